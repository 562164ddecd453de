package app

import (
	"context"

	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/usecase"
)

// MarketplaceFacade is the single application surface consumed by the HTTP
// layer and the background sweeper.
type MarketplaceFacade struct {
	auth      *usecase.AuthUseCase
	catalog   *usecase.CatalogUseCase
	orders    *usecase.OrderUseCase
	capacity  *usecase.CapacityGovernor
	reminders *usecase.ReminderUseCase
}

// NewMarketplaceFacade constructs MarketplaceFacade.
func NewMarketplaceFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	capacity *usecase.CapacityGovernor,
	reminders *usecase.ReminderUseCase,
) *MarketplaceFacade {
	return &MarketplaceFacade{
		auth:      auth,
		catalog:   catalog,
		orders:    orders,
		capacity:  capacity,
		reminders: reminders,
	}
}

func (f *MarketplaceFacade) Register(ctx context.Context, firstName, lastName, email, password string) (*model.Customer, string, error) {
	return f.auth.Register(ctx, usecase.RegisterParams{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	})
}

func (f *MarketplaceFacade) Login(ctx context.Context, email, password string) (*model.Customer, string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *MarketplaceFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) CustomerByID(ctx context.Context, id string) (*model.Customer, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *MarketplaceFacade) UpcomingRestaurants(ctx context.Context, customer *model.Customer, activeOnly bool) ([]model.UpcomingRestaurant, error) {
	return f.catalog.UpcomingRestaurants(ctx, customer.Companies, activeOnly)
}

func (f *MarketplaceFacade) CreateOrders(ctx context.Context, customer *model.Customer, lines []model.CartLine, discountCodeID string) ([]model.Order, string, error) {
	result, err := f.orders.Create(ctx, customer, lines, discountCodeID)
	if err != nil {
		return nil, "", err
	}
	return result.Orders, result.RedirectURL, nil
}

func (f *MarketplaceFacade) CancelOrder(ctx context.Context, customerID, orderID string) (*model.Order, error) {
	return f.orders.Cancel(ctx, customerID, orderID)
}

func (f *MarketplaceFacade) UpcomingOrders(ctx context.Context, customerID string) ([]model.Order, error) {
	return f.orders.UpcomingByCustomer(ctx, customerID)
}

func (f *MarketplaceFacade) DeliveredOrders(ctx context.Context, customerID string, limit int) ([]model.Order, error) {
	return f.orders.DeliveredByCustomer(ctx, customerID, limit)
}

func (f *MarketplaceFacade) AllUpcomingOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.AllUpcoming(ctx)
}

func (f *MarketplaceFacade) AllDeliveredOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.AllDelivered(ctx, limit)
}

func (f *MarketplaceFacade) MarkDelivered(ctx context.Context, orderIDs []string) ([]model.Order, error) {
	return f.orders.MarkDelivered(ctx, orderIDs)
}

func (f *MarketplaceFacade) ArchiveOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Archive(ctx, orderID)
}

// SweepCapacity runs one capacity pass over the upcoming schedule window.
func (f *MarketplaceFacade) SweepCapacity(ctx context.Context) error {
	return f.capacity.SweepUpcoming(ctx)
}

// SendOrderReminders emails subscribed customers who have not ordered for
// the coming week yet.
func (f *MarketplaceFacade) SendOrderReminders(ctx context.Context) error {
	return f.reminders.SendOrderReminders(ctx)
}
