package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/server/http/handlers"
	"github.com/feasthq/mealdesk/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/restaurants/upcoming", catalogHandler.Upcoming)
	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders/upcoming", orderHandler.Upcoming)
	authed.GET("/orders/delivered", orderHandler.Delivered)
	authed.POST("/orders/:id/cancel", orderHandler.Cancel)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin, model.RoleVendor))
	admin.GET("/orders/upcoming", adminHandler.Upcoming)
	admin.GET("/orders/delivered", adminHandler.Delivered)
	admin.GET("/customers/:id/orders/delivered", adminHandler.CustomerDelivered)
	admin.POST("/orders/delivered", adminHandler.MarkDelivered)
	admin.POST("/orders/:id/archive", adminHandler.Archive)

	return engine
}
