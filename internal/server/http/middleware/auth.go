package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
	pkgAuth "github.com/feasthq/mealdesk/internal/pkg/auth"
)

const (
	// CustomerContextKey is the gin context key for the authenticated customer.
	CustomerContextKey = "customer"
	authCookieName     = "mealdesk_token"
)

// CustomerResolver turns a session token into the customer it was issued for.
type CustomerResolver interface {
	ParseToken(token string) (string, error)
	CustomerByID(ctx context.Context, id string) (*model.Customer, error)
}

// AuthRequired ensures the request carries a valid session token and loads
// the owning customer into context.
func AuthRequired(resolver CustomerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		customerID, err := resolver.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		customer, err := resolver.CustomerByID(c.Request.Context(), customerID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(CustomerContextKey, customer)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose customer holds none of
// the allowed roles.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(CustomerContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		customer, ok := val.(*model.Customer)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		for _, role := range roles {
			if customer.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatus(http.StatusForbidden)
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes the session token cookie to the response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
