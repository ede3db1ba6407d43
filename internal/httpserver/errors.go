package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/checkout"
	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, checkout.ErrNoItems):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// remoteFailure reports a failed catalog read together with whatever data
// the page can still show.
func remoteFailure(c *gin.Context, err error, body gin.H) {
	body["error"] = err.Error()
	c.JSON(http.StatusBadGateway, body)
}
