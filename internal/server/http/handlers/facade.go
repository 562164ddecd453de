package handlers

import (
	"context"

	"github.com/feasthq/mealdesk/internal/domain/model"
)

// AuthFacade describes account capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*model.Customer, string, error)
	Login(ctx context.Context, email, password string) (*model.Customer, string, error)
	ParseToken(token string) (string, error)
	CustomerByID(ctx context.Context, id string) (*model.Customer, error)
}

// CatalogFacade exposes the upcoming-restaurant snapshot.
type CatalogFacade interface {
	UpcomingRestaurants(ctx context.Context, customer *model.Customer, activeOnly bool) ([]model.UpcomingRestaurant, error)
}

// OrderFacade encapsulates customer order operations exposed via HTTP.
// CreateOrders returns either the committed orders or a checkout redirect
// URL, never both.
type OrderFacade interface {
	CreateOrders(ctx context.Context, customer *model.Customer, lines []model.CartLine, discountCodeID string) ([]model.Order, string, error)
	CancelOrder(ctx context.Context, customerID, orderID string) (*model.Order, error)
	UpcomingOrders(ctx context.Context, customerID string) ([]model.Order, error)
	DeliveredOrders(ctx context.Context, customerID string, limit int) ([]model.Order, error)
}

// AdminFacade covers fulfilment operations for admin and vendor roles.
type AdminFacade interface {
	AllUpcomingOrders(ctx context.Context) ([]model.Order, error)
	AllDeliveredOrders(ctx context.Context, limit int) ([]model.Order, error)
	DeliveredOrders(ctx context.Context, customerID string, limit int) ([]model.Order, error)
	MarkDelivered(ctx context.Context, orderIDs []string) ([]model.Order, error)
	ArchiveOrder(ctx context.Context, orderID string) (*model.Order, error)
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	AdminFacade
}
