package httpserver

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

func (h *handlers) home(c *gin.Context) {
	s := currentSession(c)
	products, err := h.catalog.GetProducts(c.Request.Context())
	body := gin.H{
		"brand":     newBrandView(h.brand, h.number),
		"cartCount": s.Cart.TotalItems(),
	}
	if err != nil {
		body["featured"] = []domain.Product{}
		remoteFailure(c, err, body)
		return
	}
	body["featured"] = catalog.Featured(products)
	c.JSON(http.StatusOK, body)
}

func (h *handlers) shop(c *gin.Context) {
	s := currentSession(c)
	opts := catalog.FilterOptions{
		Category: c.DefaultQuery("category", "all"),
		Sort:     c.DefaultQuery("sort", catalog.SortNewest),
		Search:   c.Query("search"),
	}
	products, err := h.catalog.GetProducts(c.Request.Context())
	body := gin.H{
		"category":  opts.Category,
		"sort":      opts.Sort,
		"cartCount": s.Cart.TotalItems(),
	}
	if err != nil {
		body["products"] = []domain.Product{}
		body["categories"] = categoriesOf(h.brand, nil)
		remoteFailure(c, err, body)
		return
	}
	wished := map[string]bool{}
	for _, p := range products {
		if s.Wishlist.IsInWishlist(p.ID) {
			wished[p.ID] = true
		}
	}
	body["products"] = catalog.Filter(products, opts)
	body["categories"] = categoriesOf(h.brand, products)
	body["wishlisted"] = wished
	c.JSON(http.StatusOK, body)
}

func (h *handlers) cartPage(c *gin.Context) {
	c.JSON(http.StatusOK, newCartView(currentSession(c).Cart, h.brand))
}

func (h *handlers) wishlistPage(c *gin.Context) {
	c.JSON(http.StatusOK, newWishlistView(currentSession(c).Wishlist))
}

func (h *handlers) about(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"brand": newBrandView(h.brand, h.number)})
}

func (h *handlers) contact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"brand":   newBrandView(h.brand, h.number),
		"channel": "whatsapp",
	})
}

func (h *handlers) adminDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := h.catalog.GetProducts(ctx)
	if err != nil {
		remoteFailure(c, err, gin.H{"products": []adminProductRow{}})
		return
	}
	orders, ordersErr := h.catalog.GetOrders(ctx)

	lowStock := 0
	for _, p := range products {
		if level := catalog.StockLevel(p.Stock); level == catalog.StockLow || level == catalog.StockOut {
			lowStock++
		}
	}
	body := gin.H{
		"totalProducts": len(products),
		"lowStock":      lowStock,
		"totalOrders":   len(orders),
		"products":      adminRows(products),
	}
	if ordersErr != nil {
		body["ordersError"] = ordersErr.Error()
	}
	c.JSON(http.StatusOK, body)
}

func (h *handlers) adminProducts(c *gin.Context) {
	products, err := h.catalog.GetProducts(c.Request.Context())
	if err != nil {
		remoteFailure(c, err, gin.H{"products": []adminProductRow{}})
		return
	}
	filtered := catalog.Filter(products, catalog.FilterOptions{Search: c.Query("search")})
	c.JSON(http.StatusOK, gin.H{
		"search":   c.Query("search"),
		"products": adminRows(filtered),
	})
}

func (h *handlers) adminNewProduct(c *gin.Context) {
	fields := domain.ProductFields{}
	if len(h.brand.Categories) > 0 {
		fields.Category = h.brand.Categories[0]
	}
	c.JSON(http.StatusOK, gin.H{
		"fields":     fields,
		"categories": categoriesOf(h.brand, nil),
	})
}

func (h *handlers) adminEditProduct(c *gin.Context) {
	p, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         p.ID,
		"fields":     domain.FieldsOf(*p),
		"categories": categoriesOf(h.brand, nil),
	})
}

var orderStatuses = []domain.OrderStatus{
	domain.OrderPending,
	domain.OrderProcessing,
	domain.OrderShipped,
	domain.OrderDelivered,
	domain.OrderCancelled,
}

func (h *handlers) adminOrders(c *gin.Context) {
	orders, err := h.catalog.GetOrders(c.Request.Context())
	body := gin.H{"orders": orders, "statuses": orderStatuses}
	if err != nil {
		remoteFailure(c, err, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *handlers) adminAnalytics(c *gin.Context) {
	orders, err := h.catalog.GetOrders(c.Request.Context())
	recent := orders
	if len(recent) > 5 {
		recent = recent[:5]
	}
	body := gin.H{
		"summary":  catalog.Summarize(orders),
		"recent":   recent,
		"currency": h.brand.CurrencySymbol,
	}
	if err != nil {
		remoteFailure(c, err, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
