package test

import (
	"context"

	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
)

// CustomerRepositoryStub provides controllable customer persistence.
type CustomerRepositoryStub struct {
	CreateFn      func(context.Context, *model.Customer) (*model.Customer, error)
	ByEmailFn     func(context.Context, string) (*model.Customer, error)
	ByIDFn        func(context.Context, string) (*model.Customer, error)
	SubscribersFn func(context.Context) ([]model.Customer, error)
}

// Create delegates to the override or echoes the customer back.
func (s CustomerRepositoryStub) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, customer)
	}
	out := *customer
	if out.ID == "" {
		out.ID = "customer-1"
	}
	return &out, nil
}

// GetByEmail delegates to the override or reports not found.
func (s CustomerRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	if s.ByEmailFn != nil {
		return s.ByEmailFn(ctx, email)
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID delegates to the override or reports not found.
func (s CustomerRepositoryStub) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	if s.ByIDFn != nil {
		return s.ByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// ListReminderSubscribers delegates to the override or returns nothing.
func (s CustomerRepositoryStub) ListReminderSubscribers(ctx context.Context) ([]model.Customer, error) {
	if s.SubscribersFn != nil {
		return s.SubscribersFn(ctx)
	}
	return nil, nil
}

// RestaurantRepositoryStub provides controllable catalog access.
type RestaurantRepositoryStub struct {
	ByIDFn              func(context.Context, string) (*model.Restaurant, error)
	UpcomingFn          func(context.Context, string, int64, bool) ([]model.Restaurant, error)
	ScheduledBetweenFn  func(context.Context, int64, int64) ([]model.Restaurant, error)
	SetScheduleStatusFn func(context.Context, string, int64, string, model.ScheduleStatus) error
}

// GetByID delegates to the override or reports not found.
func (s RestaurantRepositoryStub) GetByID(ctx context.Context, id string) (*model.Restaurant, error) {
	if s.ByIDFn != nil {
		return s.ByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// UpcomingByCompany delegates to the override or returns nothing.
func (s RestaurantRepositoryStub) UpcomingByCompany(ctx context.Context, companyID string, fromMS int64, activeOnly bool) ([]model.Restaurant, error) {
	if s.UpcomingFn != nil {
		return s.UpcomingFn(ctx, companyID, fromMS, activeOnly)
	}
	return nil, nil
}

// ListScheduledBetween delegates to the override or returns nothing.
func (s RestaurantRepositoryStub) ListScheduledBetween(ctx context.Context, fromMS, toMS int64) ([]model.Restaurant, error) {
	if s.ScheduledBetweenFn != nil {
		return s.ScheduledBetweenFn(ctx, fromMS, toMS)
	}
	return nil, nil
}

// SetScheduleStatus delegates to the override or succeeds silently.
func (s RestaurantRepositoryStub) SetScheduleStatus(ctx context.Context, restaurantID string, dateMS int64, companyID string, status model.ScheduleStatus) error {
	if s.SetScheduleStatusFn != nil {
		return s.SetScheduleStatusFn(ctx, restaurantID, dateMS, companyID, status)
	}
	return nil
}

// OrderRepositoryStub provides controllable order persistence.
type OrderRepositoryStub struct {
	InsertManyFn       func(context.Context, []model.Order) ([]model.Order, error)
	ByIDFn             func(context.Context, string) (*model.Order, error)
	ListByCustomerFn   func(context.Context, string, model.OrderStatus, int, bool) ([]model.Order, error)
	ListByStatusFn     func(context.Context, model.OrderStatus, int, bool) ([]model.Order, error)
	ActiveSinceFn      func(context.Context, string, int64) ([]model.Order, error)
	ActiveForSlotsFn   func(context.Context, []string, []string, []int64) ([]model.Order, error)
	UpdateStatusFn     func(context.Context, string, model.OrderStatus, model.OrderStatus) (*model.Order, error)
	MarkDeliveredFn    func(context.Context, []string) ([]model.Order, error)
	SaveFn             func(context.Context, *model.Order) error
	DeliveryWindowIDFn func(context.Context, int64, int64) ([]string, error)
}

// InsertMany delegates to the override or echoes the batch back.
func (s OrderRepositoryStub) InsertMany(ctx context.Context, orders []model.Order) ([]model.Order, error) {
	if s.InsertManyFn != nil {
		return s.InsertManyFn(ctx, orders)
	}
	return orders, nil
}

// GetByID delegates to the override or reports not found.
func (s OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.ByIDFn != nil {
		return s.ByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// ListByCustomer delegates to the override or returns nothing.
func (s OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID string, status model.OrderStatus, limit int, ascending bool) ([]model.Order, error) {
	if s.ListByCustomerFn != nil {
		return s.ListByCustomerFn(ctx, customerID, status, limit, ascending)
	}
	return nil, nil
}

// ListByStatus delegates to the override or returns nothing.
func (s OrderRepositoryStub) ListByStatus(ctx context.Context, status model.OrderStatus, limit int, ascending bool) ([]model.Order, error) {
	if s.ListByStatusFn != nil {
		return s.ListByStatusFn(ctx, status, limit, ascending)
	}
	return nil, nil
}

// ActiveSince delegates to the override or returns nothing.
func (s OrderRepositoryStub) ActiveSince(ctx context.Context, customerID string, fromMS int64) ([]model.Order, error) {
	if s.ActiveSinceFn != nil {
		return s.ActiveSinceFn(ctx, customerID, fromMS)
	}
	return nil, nil
}

// ActiveForSlots delegates to the override or returns nothing.
func (s OrderRepositoryStub) ActiveForSlots(ctx context.Context, restaurantIDs, companyIDs []string, dates []int64) ([]model.Order, error) {
	if s.ActiveForSlotsFn != nil {
		return s.ActiveForSlotsFn(ctx, restaurantIDs, companyIDs, dates)
	}
	return nil, nil
}

// UpdateStatus delegates to the override or reports not found.
func (s OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, from, to)
	}
	return nil, domainErrors.ErrNotFound
}

// MarkDelivered delegates to the override or returns nothing.
func (s OrderRepositoryStub) MarkDelivered(ctx context.Context, ids []string) ([]model.Order, error) {
	if s.MarkDeliveredFn != nil {
		return s.MarkDeliveredFn(ctx, ids)
	}
	return nil, nil
}

// Save delegates to the override or succeeds silently.
func (s OrderRepositoryStub) Save(ctx context.Context, order *model.Order) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, order)
	}
	return nil
}

// CustomerIDsWithDeliveriesBetween delegates to the override or returns
// nothing.
func (s OrderRepositoryStub) CustomerIDsWithDeliveriesBetween(ctx context.Context, fromMS, toMS int64) ([]string, error) {
	if s.DeliveryWindowIDFn != nil {
		return s.DeliveryWindowIDFn(ctx, fromMS, toMS)
	}
	return nil, nil
}

// DiscountRepositoryStub provides controllable discount code access.
type DiscountRepositoryStub struct {
	ByIDFn      func(context.Context, string) (*model.DiscountCode, error)
	IncrementFn func(context.Context, string) error
}

// GetByID delegates to the override or reports not found.
func (s DiscountRepositoryStub) GetByID(ctx context.Context, id string) (*model.DiscountCode, error) {
	if s.ByIDFn != nil {
		return s.ByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// IncrementRedemptions delegates to the override or succeeds silently.
func (s DiscountRepositoryStub) IncrementRedemptions(ctx context.Context, id string) error {
	if s.IncrementFn != nil {
		return s.IncrementFn(ctx, id)
	}
	return nil
}
