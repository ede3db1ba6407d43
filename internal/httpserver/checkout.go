package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"

	"storefront/internal/checkout"

	"github.com/gin-gonic/gin"
)

type checkoutResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// checkout previews the order message and deep link without navigating.
func (h *handlers) checkout(c *gin.Context) {
	var info checkout.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	store := currentSession(c).Cart
	lines := store.Items()
	if len(lines) == 0 {
		writeError(c, checkout.ErrNoItems)
		return
	}
	msg := checkout.BuildMessage(h.brand, lines, store.TotalPrice(), &info)
	c.JSON(http.StatusOK, checkoutResponse{Message: msg, URL: checkout.Link(h.number, msg)})
}

// openCheckout sends the shopper to the messaging app.
func (h *handlers) openCheckout(c *gin.Context) {
	info := checkout.CustomerInfo{
		Name:    c.Query("name"),
		Phone:   c.Query("phone"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
		Notes:   c.Query("notes"),
	}
	store := currentSession(c).Cart
	redirect := checkout.OpenerFunc(func(_ context.Context, link string) error {
		c.Redirect(http.StatusSeeOther, link)
		return nil
	})
	link, err := checkout.Open(c.Request.Context(), redirect, h.brand, h.number, store.Items(), store.TotalPrice(), &info)
	if err != nil {
		writeError(c, err)
		return
	}
	h.logger.Printf("checkout: session=%s items=%d link_len=%d", currentSession(c).ID, store.TotalItems(), len(link))
}
