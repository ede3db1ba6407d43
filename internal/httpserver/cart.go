package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type wishlistItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// respondCart writes the cart view. A failed write-through still reports
// the in-memory cart so the client can show what the shopper did.
func (h *handlers) respondCart(c *gin.Context, status int, err error) {
	view := newCartView(currentSession(c).Cart, h.brand)
	if err != nil {
		h.logger.Printf("cart: persist error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "cart": view})
		return
	}
	c.JSON(status, view)
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	err = currentSession(c).Cart.AddItem(c.Request.Context(), *p, req.Quantity, req.Size, req.Color)
	h.respondCart(c, http.StatusOK, err)
}

func (h *handlers) setCartQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := currentSession(c).Cart.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
	h.respondCart(c, http.StatusOK, err)
}

func (h *handlers) incrementCartItem(c *gin.Context) {
	h.stepQuantity(c, 1)
}

func (h *handlers) decrementCartItem(c *gin.Context) {
	h.stepQuantity(c, -1)
}

// stepQuantity moves a line's quantity by delta, never below one.
func (h *handlers) stepQuantity(c *gin.Context, delta int) {
	store := currentSession(c).Cart
	id := c.Param("id")
	line, ok := store.Line(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not in cart"})
		return
	}
	next := max(1, line.Quantity+delta)
	err := store.UpdateQuantity(c.Request.Context(), id, next)
	h.respondCart(c, http.StatusOK, err)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	err := currentSession(c).Cart.RemoveItem(c.Request.Context(), c.Param("id"))
	h.respondCart(c, http.StatusOK, err)
}

func (h *handlers) clearCart(c *gin.Context) {
	err := currentSession(c).Cart.ClearCart(c.Request.Context())
	h.respondCart(c, http.StatusOK, err)
}

func (h *handlers) addWishlistItem(c *gin.Context) {
	var req wishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		writeError(c, err)
		return
	}
	h.respondWishlist(c, currentSession(c).Wishlist.AddItem(c.Request.Context(), *p))
}

func (h *handlers) removeWishlistItem(c *gin.Context) {
	h.respondWishlist(c, currentSession(c).Wishlist.RemoveItem(c.Request.Context(), c.Param("id")))
}

func (h *handlers) respondWishlist(c *gin.Context, err error) {
	view := newWishlistView(currentSession(c).Wishlist)
	if err != nil {
		h.logger.Printf("wishlist: persist error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "wishlist": view})
		return
	}
	c.JSON(http.StatusOK, view)
}
