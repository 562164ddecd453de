package test

import (
	"context"

	"github.com/feasthq/mealdesk/internal/domain/model"
)

// MarketplaceFacadeStub overrides individual facade operations for handler,
// middleware and router tests. Unset functions return permissive defaults.
type MarketplaceFacadeStub struct {
	RegisterFn           func(ctx context.Context, firstName, lastName, email, password string) (*model.Customer, string, error)
	LoginFn              func(ctx context.Context, email, password string) (*model.Customer, string, error)
	ParseTokenFn         func(token string) (string, error)
	CustomerByIDFn       func(ctx context.Context, id string) (*model.Customer, error)
	UpcomingFn           func(ctx context.Context, customer *model.Customer, activeOnly bool) ([]model.UpcomingRestaurant, error)
	CreateOrdersFn       func(ctx context.Context, customer *model.Customer, lines []model.CartLine, discountCodeID string) ([]model.Order, string, error)
	CancelOrderFn        func(ctx context.Context, customerID, orderID string) (*model.Order, error)
	UpcomingOrdersFn     func(ctx context.Context, customerID string) ([]model.Order, error)
	DeliveredOrdersFn    func(ctx context.Context, customerID string, limit int) ([]model.Order, error)
	AllUpcomingOrdersFn  func(ctx context.Context) ([]model.Order, error)
	AllDeliveredOrdersFn func(ctx context.Context, limit int) ([]model.Order, error)
	MarkDeliveredFn      func(ctx context.Context, orderIDs []string) ([]model.Order, error)
	ArchiveOrderFn       func(ctx context.Context, orderID string) (*model.Order, error)
}

func stubCustomer(id string) *model.Customer {
	return &model.Customer{ID: id, FirstName: "Jo", Email: "jo@corp.example", Role: model.RoleCustomer}
}

func (s MarketplaceFacadeStub) Register(ctx context.Context, firstName, lastName, email, password string) (*model.Customer, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, firstName, lastName, email, password)
	}
	return stubCustomer("customer-1"), "token", nil
}

func (s MarketplaceFacadeStub) Login(ctx context.Context, email, password string) (*model.Customer, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return stubCustomer("customer-1"), "token", nil
}

func (s MarketplaceFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return "customer-1", nil
}

func (s MarketplaceFacadeStub) CustomerByID(ctx context.Context, id string) (*model.Customer, error) {
	if s.CustomerByIDFn != nil {
		return s.CustomerByIDFn(ctx, id)
	}
	return stubCustomer(id), nil
}

func (s MarketplaceFacadeStub) UpcomingRestaurants(ctx context.Context, customer *model.Customer, activeOnly bool) ([]model.UpcomingRestaurant, error) {
	if s.UpcomingFn != nil {
		return s.UpcomingFn(ctx, customer, activeOnly)
	}
	return nil, nil
}

func (s MarketplaceFacadeStub) CreateOrders(ctx context.Context, customer *model.Customer, lines []model.CartLine, discountCodeID string) ([]model.Order, string, error) {
	if s.CreateOrdersFn != nil {
		return s.CreateOrdersFn(ctx, customer, lines, discountCodeID)
	}
	return nil, "", nil
}

func (s MarketplaceFacadeStub) CancelOrder(ctx context.Context, customerID, orderID string) (*model.Order, error) {
	if s.CancelOrderFn != nil {
		return s.CancelOrderFn(ctx, customerID, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil
}

func (s MarketplaceFacadeStub) UpcomingOrders(ctx context.Context, customerID string) ([]model.Order, error) {
	if s.UpcomingOrdersFn != nil {
		return s.UpcomingOrdersFn(ctx, customerID)
	}
	return nil, nil
}

func (s MarketplaceFacadeStub) DeliveredOrders(ctx context.Context, customerID string, limit int) ([]model.Order, error) {
	if s.DeliveredOrdersFn != nil {
		return s.DeliveredOrdersFn(ctx, customerID, limit)
	}
	return nil, nil
}

func (s MarketplaceFacadeStub) AllUpcomingOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllUpcomingOrdersFn != nil {
		return s.AllUpcomingOrdersFn(ctx)
	}
	return nil, nil
}

func (s MarketplaceFacadeStub) AllDeliveredOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.AllDeliveredOrdersFn != nil {
		return s.AllDeliveredOrdersFn(ctx, limit)
	}
	return nil, nil
}

func (s MarketplaceFacadeStub) MarkDelivered(ctx context.Context, orderIDs []string) ([]model.Order, error) {
	if s.MarkDeliveredFn != nil {
		return s.MarkDeliveredFn(ctx, orderIDs)
	}
	return nil, nil
}

func (s MarketplaceFacadeStub) ArchiveOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if s.ArchiveOrderFn != nil {
		return s.ArchiveOrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusArchived}, nil
}
