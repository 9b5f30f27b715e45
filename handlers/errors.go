package handlers

import (
	"errors"
	"net/http"

	"takeout-api/services"

	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to the HTTP status returned to clients
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrDishNotFound),
		errors.Is(err, services.ErrComboNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDishOnSale),
		errors.Is(err, services.ErrDishReferencedByCombo),
		errors.Is(err, services.ErrComboOnSale),
		errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, services.ErrComboEnableBlocked),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrOrderForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrEmptySelection),
		errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrInvalidDateRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err in the usual {"error": msg} shape. Internal
// failures are not echoed to the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
