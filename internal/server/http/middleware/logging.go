package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feasthq/mealdesk/internal/domain/model"
)

// RequestLogger logs information about incoming requests using slog. When the
// auth middleware already resolved a customer, the customer id is attached so
// order and fulfilment requests can be traced back to an account.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Int("bytes", c.Writer.Size()),
			slog.Duration("latency", latency),
		}
		if val, ok := c.Get(CustomerContextKey); ok {
			if customer, ok := val.(*model.Customer); ok {
				attrs = append(attrs, slog.String("customer_id", customer.ID))
			}
		}
		logger.Info("http request", attrs...)
	}
}
