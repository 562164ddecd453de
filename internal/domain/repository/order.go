package repository

import (
	"context"

	"github.com/feasthq/mealdesk/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	InsertMany(ctx context.Context, orders []model.Order) ([]model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// ListByCustomer returns the customer's orders in the given status,
	// sorted by delivery date. A non-positive limit means no limit.
	ListByCustomer(ctx context.Context, customerID string, status model.OrderStatus, limit int, ascending bool) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus, limit int, ascending bool) ([]model.Order, error)
	// ActiveSince returns the customer's active orders (status not in
	// PENDING/ARCHIVED/CANCELLED) delivering at or after fromMS.
	ActiveSince(ctx context.Context, customerID string, fromMS int64) ([]model.Order, error)
	// ActiveForSlots returns PROCESSING orders against the given
	// restaurant/company/date combinations for capacity accounting.
	ActiveForSlots(ctx context.Context, restaurantIDs, companyIDs []string, dates []int64) ([]model.Order, error)
	// UpdateStatus transitions one order from -> to and returns the updated
	// document, or ErrNotFound when no order matched.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error)
	// MarkDelivered bulk-transitions PROCESSING orders to DELIVERED and
	// returns the affected documents.
	MarkDelivered(ctx context.Context, ids []string) ([]model.Order, error)
	Save(ctx context.Context, order *model.Order) error
	// CustomerIDsWithDeliveriesBetween lists customers holding any order
	// delivering within [fromMS, toMS).
	CustomerIDsWithDeliveriesBetween(ctx context.Context, fromMS, toMS int64) ([]string, error)
}
