package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/internal/brand"
	"storefront/internal/domain"
	"storefront/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Catalog is the catalog data access the handlers need.
type Catalog interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, f domain.ProductFields) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ClearProductCache()
	GetOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	CheckStock(ctx context.Context, id string, quantity int) (bool, error)
	Remote() bool
}

// Sessions opens and closes per-shopper stores.
type Sessions interface {
	Open(ctx context.Context, id string) (*session.Session, error)
	Close(ctx context.Context, id string) error
}

type Deps struct {
	Catalog  Catalog
	Sessions Sessions
	Brand    brand.Brand
	// WhatsAppNumber overrides the brand's checkout recipient when set.
	WhatsAppNumber string
	// Cookies signs the session cookie. A random key is used when nil.
	Cookies     *securecookie.SecureCookie
	CORSOrigins []string
}

type handlers struct {
	catalog  Catalog
	sessions Sessions
	brand    brand.Brand
	number   string
	logger   *log.Logger
}

// buildRouter wires routes for the storefront.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if deps.Catalog == nil || deps.Sessions == nil {
		return nil, errors.New("httpserver: catalog and sessions are required")
	}
	if deps.Brand.Key == "" {
		deps.Brand = brand.Mashafy
	}
	if deps.Cookies == nil {
		deps.Cookies = securecookie.New(securecookie.GenerateRandomKey(32), nil)
	}
	number := deps.WhatsAppNumber
	if number == "" {
		number = deps.Brand.WhatsAppNumber
	}
	h := &handlers{
		catalog:  deps.Catalog,
		sessions: deps.Sessions,
		brand:    deps.Brand,
		number:   number,
		logger:   logger,
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(corsMiddleware(deps.CORSOrigins))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, deps.Catalog))

	withSession := sessionMiddleware(deps.Cookies, deps.Sessions, logger)

	pages := router.Group("/", withSession)
	pages.GET("/", h.home)
	pages.GET("/shop", h.shop)
	pages.GET("/cart", h.cartPage)
	pages.GET("/wishlist", h.wishlistPage)
	pages.GET("/about", h.about)
	pages.GET("/contact", h.contact)

	admin := router.Group("/admin")
	admin.GET("", h.adminDashboard)
	admin.GET("/products", h.adminProducts)
	admin.GET("/products/new", h.adminNewProduct)
	admin.GET("/products/:id/edit", h.adminEditProduct)
	admin.GET("/orders", h.adminOrders)
	admin.GET("/analytics", h.adminAnalytics)

	api := router.Group("/api")
	shopper := api.Group("", withSession)
	shopper.POST("/cart/items", h.addCartItem)
	shopper.PATCH("/cart/items/:id", h.setCartQuantity)
	shopper.POST("/cart/items/:id/increment", h.incrementCartItem)
	shopper.POST("/cart/items/:id/decrement", h.decrementCartItem)
	shopper.DELETE("/cart/items/:id", h.removeCartItem)
	shopper.DELETE("/cart", h.clearCart)
	shopper.POST("/wishlist/items", h.addWishlistItem)
	shopper.DELETE("/wishlist/items/:id", h.removeWishlistItem)
	shopper.POST("/checkout", h.checkout)
	shopper.GET("/checkout/open", h.openCheckout)
	shopper.DELETE("/session", h.resetSession)

	api.POST("/admin/products", h.createProduct)
	api.PUT("/admin/products/:id", h.updateProduct)
	api.DELETE("/admin/products/:id", h.deleteProduct)
	api.PATCH("/admin/orders/:id/status", h.updateOrderStatus)

	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return router, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: true,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
