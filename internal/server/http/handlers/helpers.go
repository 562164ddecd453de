package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/server/http/middleware"
)

// CurrentCustomer extracts the authenticated customer from context.
func CurrentCustomer(c *gin.Context) *model.Customer {
	val, ok := c.Get(middleware.CustomerContextKey)
	if !ok {
		return nil
	}
	customer, _ := val.(*model.Customer)
	return customer
}

// limitQuery parses an optional ?limit= parameter; absent or malformed
// values mean no limit.
func limitQuery(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrInvalidCredentials),
		errors.Is(err, domainErrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainErrors.ErrNoActiveShift):
		return http.StatusForbidden
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists),
		errors.Is(err, domainErrors.ErrConflict),
		errors.Is(err, domainErrors.ErrChangesClosed):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidCart),
		errors.Is(err, domainErrors.ErrInvalidDiscountCode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrPaymentProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
