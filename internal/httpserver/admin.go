package httpserver

import (
	"net/http"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

type orderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

func (h *handlers) bindProductFields(c *gin.Context) (domain.ProductFields, bool) {
	var f domain.ProductFields
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return f, false
	}
	if err := f.Validate(h.brand); err != nil {
		writeError(c, err)
		return f, false
	}
	return f, true
}

func (h *handlers) createProduct(c *gin.Context) {
	f, ok := h.bindProductFields(c)
	if !ok {
		return
	}
	p, err := h.catalog.CreateProduct(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	h.catalog.ClearProductCache()
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) updateProduct(c *gin.Context) {
	f, ok := h.bindProductFields(c)
	if !ok {
		return
	}
	p, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, err)
		return
	}
	h.catalog.ClearProductCache()
	c.JSON(http.StatusOK, p)
}

// deleteProduct requires confirm=true before anything is removed.
func (h *handlers) deleteProduct(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": "confirm=true is required to delete a product"})
		return
	}
	id := c.Param("id")
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	h.catalog.ClearProductCache()
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o, err := h.catalog.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
