package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/feasthq/mealdesk/internal/adapter/mailer"
	"github.com/feasthq/mealdesk/internal/adapter/payment"
	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/pkg/clock"
	"github.com/feasthq/mealdesk/internal/test"
)

var (
	orderNow       = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	orderWednesday = model.DateToMS(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	orderThursday  = model.DateToMS(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
)

func newOrderUC(
	orders test.OrderRepositoryStub,
	restaurants test.RestaurantRepositoryStub,
	discounts test.DiscountRepositoryStub,
	payments test.PaymentClientStub,
	mail *test.MailerStub,
	locks *test.LockerStub,
) *OrderUseCase {
	c := clock.Fixed(orderNow)
	return NewOrderUseCase(
		orders, restaurants, discounts,
		NewCatalogUseCase(restaurants, c),
		NewStipendEngine(orders, discounts),
		NewCapacityGovernor(orders, restaurants, c, discardLogger()),
		payments, mail, locks, c, discardLogger(),
	)
}

func orderCustomer(stipend float64) *model.Customer {
	return &model.Customer{
		ID:        "cust-1",
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "jo@corp.example",
		Role:      model.RoleCustomer,
		Companies: []model.Company{{
			ID:      "c1",
			Name:    "Acme",
			Shift:   model.ShiftDay,
			Stipend: stipend,
			Address: model.Address{City: "Austin", AddressLine1: "1 Main St"},
			Status:  model.CompanyStatusActive,
		}},
	}
}

func scheduledAggregate(price float64, status model.ScheduleStatus, dates ...int64) []model.Restaurant {
	schedules := make([]model.Schedule, 0, len(dates))
	for _, d := range dates {
		schedules = append(schedules, model.Schedule{
			DateMS:    d,
			Status:    status,
			CompanyID: "c1",
			Shift:     model.ShiftDay,
		})
	}
	return []model.Restaurant{{
		ID:   "r1",
		Name: "Thai Spoon",
		Logo: "thai-spoon.png",
		Items: []model.Item{{
			ID:     "i1",
			Name:   "Pad Thai",
			Price:  price,
			Status: model.ItemStatusActive,
		}},
		Schedules: schedules,
	}}
}

func orderLine(dateMS int64) model.CartLine {
	return model.CartLine{
		ItemID:         "i1",
		Quantity:       1,
		RestaurantID:   "r1",
		CompanyID:      "c1",
		DeliveryDateMS: dateMS,
	}
}

func TestCreateCoveredCommitsWithoutPayment(t *testing.T) {
	var inserted []model.Order
	orders := test.OrderRepositoryStub{
		InsertManyFn: func(_ context.Context, batch []model.Order) ([]model.Order, error) {
			inserted = batch
			return batch, nil
		},
	}
	restaurants := test.RestaurantRepositoryStub{
		UpcomingFn: func(context.Context, string, int64, bool) ([]model.Restaurant, error) {
			return scheduledAggregate(12, model.ScheduleStatusActive, orderWednesday), nil
		},
	}
	payments := test.PaymentClientStub{
		CreateSessionFn: func(context.Context, payment.CheckoutParams) (*payment.CheckoutSession, error) {
			t.Fatal("payment call not expected for covered cart")
			return nil, nil
		},
	}

	uc := newOrderUC(orders, restaurants, test.DiscountRepositoryStub{}, payments, &test.MailerStub{}, &test.LockerStub{})
	result, err := uc.Create(context.Background(), orderCustomer(15), []model.CartLine{orderLine(orderWednesday)}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Orders) != 1 || result.RedirectURL != "" {
		t.Fatalf("unexpected result: %+v", result)
	}

	got := inserted[0]
	if got.Status != model.OrderStatusProcessing || got.PendingOrderID != "" || got.Payment != nil {
		t.Fatalf("unexpected order state: %+v", got)
	}
	if got.ID == "" {
		t.Fatal("expected generated order id")
	}
	if got.Item.Total != 12 || got.Item.Image != "thai-spoon.png" {
		t.Fatalf("unexpected item snapshot: %+v", got.Item)
	}
	if got.Delivery.Address.City != "Austin" || got.Company.Shift != model.ShiftDay {
		t.Fatalf("unexpected snapshots: %+v", got)
	}
}

func TestCreateCoveredIncrementsDiscountOnce(t *testing.T) {
	orders := test.OrderRepositoryStub{}
	restaurants := test.RestaurantRepositoryStub{
		UpcomingFn: func(context.Context, string, int64, bool) ([]model.Restaurant, error) {
			return scheduledAggregate(20, model.ScheduleStatusActive, orderWednesday, orderThursday), nil
		},
	}
	var increments int
	discounts := test.DiscountRepositoryStub{
		ByIDFn: func(_ context.Context, id string) (*model.DiscountCode, error) {
			return &model.DiscountCode{ID: id, Value: 10, Redeemability: model.RedeemOnce}, nil
		},
		IncrementFn: func(_ context.Context, id string) error {
			if id != "dc-1" {
				t.Fatalf("unexpected code id: %s", id)
			}
			increments++
			return nil
		},
	}

	uc := newOrderUC(orders, restaurants, discounts, test.PaymentClientStub{}, &test.MailerStub{}, &test.LockerStub{})
	// Two dates at 20 each against a 15 stipend leave 5+5 payable, fully
	// absorbed by the 10 discount.
	lines := []model.CartLine{orderLine(orderWednesday), orderLine(orderThursday)}
	result, err := uc.Create(context.Background(), orderCustomer(15), lines, "dc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Orders) != 2 {
		t.Fatalf("expected two committed orders, got %+v", result)
	}
	if increments != 1 {
		t.Fatalf("expected exactly one redemption increment, got %d", increments)
	}
}

func TestCreatePayableDefersBehindCheckout(t *testing.T) {
	var inserted []model.Order
	orders := test.OrderRepositoryStub{
		InsertManyFn: func(_ context.Context, batch []model.Order) ([]model.Order, error) {
			inserted = batch
			return batch, nil
		},
	}
	restaurants := test.RestaurantRepositoryStub{
		UpcomingFn: func(context.Context, string, int64, bool) ([]model.Restaurant, error) {
			return scheduledAggregate(40, model.ScheduleStatusActive, orderWednesday), nil
		},
	}
	var params payment.CheckoutParams
	payments := test.PaymentClientStub{
		CreateSessionFn: func(_ context.Context, p payment.CheckoutParams) (*payment.CheckoutSession, error) {
			params = p
			return &payment.CheckoutSession{ID: "cs_9", RedirectURL: "https://pay.example/cs_9"}, nil
		},
	}
	discounts := test.DiscountRepositoryStub{
		IncrementFn: func(context.Context, string) error {
			t.Fatal("redemption increment belongs to the payment webhook")
			return nil
		},
	}

	uc := newOrderUC(orders, restaurants, discounts, payments, &test.MailerStub{}, &test.LockerStub{})
	result, err := uc.Create(context.Background(), orderCustomer(15), []model.CartLine{orderLine(orderWednesday)}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RedirectURL != "https://pay.example/cs_9" || len(result.Orders) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	if params.PendingOrderID == "" || params.CustomerEmail != "jo@corp.example" {
		t.Fatalf("unexpected checkout params: %+v", params)
	}
	if len(params.LineItems) != 1 {
		t.Fatalf("expected one line item, got %+v", params.LineItems)
	}
	li := params.LineItems[0]
	if li.AmountMinor != 2500 {
		t.Fatalf("expected 2500 minor units, got %d", li.AmountMinor)
	}
	if li.Label != "Wed, 04 Mar - Day" {
		t.Fatalf("unexpected label: %q", li.Label)
	}
	if !strings.Contains(li.Description, "Pad Thai") {
		t.Fatalf("unexpected description: %q", li.Description)
	}

	if len(inserted) != 1 {
		t.Fatalf("expected one pending order, got %d", len(inserted))
	}
	if inserted[0].Status != model.OrderStatusPending || inserted[0].PendingOrderID != params.PendingOrderID {
		t.Fatalf("unexpected pending order: %+v", inserted[0])
	}
}

func TestCreateValidatesInput(t *testing.T) {
	uc := newOrderUC(test.OrderRepositoryStub{}, test.RestaurantRepositoryStub{}, test.DiscountRepositoryStub{}, test.PaymentClientStub{}, &test.MailerStub{}, &test.LockerStub{})

	if _, err := uc.Create(context.Background(), orderCustomer(15), nil, ""); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	bad := orderLine(orderWednesday)
	bad.Quantity = 0
	if _, err := uc.Create(context.Background(), orderCustomer(15), []model.CartLine{bad}, ""); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreateRejectsInactiveSchedule(t *testing.T) {
	restaurants := test.RestaurantRepositoryStub{
		UpcomingFn: func(context.Context, string, int64, bool) ([]model.Restaurant, error) {
			// The slot saturated and was deactivated; activeOnly filtering
			// drops it from the snapshot.
			return scheduledAggregate(12, model.ScheduleStatusInactive, orderWednesday), nil
		},
	}
	orders := test.OrderRepositoryStub{
		InsertManyFn: func(context.Context, []model.Order) ([]model.Order, error) {
			t.Fatal("persistence not expected")
			return nil, nil
		},
	}

	uc := newOrderUC(orders, restaurants, test.DiscountRepositoryStub{}, test.PaymentClientStub{}, &test.MailerStub{}, &test.LockerStub{})
	_, err := uc.Create(context.Background(), orderCustomer(15), []model.CartLine{orderLine(orderWednesday)}, "")
	if !errors.Is(err, domainErrors.ErrInvalidCart) {
		t.Fatalf("expected ErrInvalidCart, got %v", err)
	}
}

func paidOrder() *model.Order {
	return &model.Order{
		ID:         "o1",
		Customer:   model.OrderCustomer{ID: "cust-1", FirstName: "Jo", Email: "jo@corp.example"},
		Restaurant: model.OrderRestaurant{ID: "r1", Name: "Thai Spoon"},
		Company:    model.OrderCompany{ID: "c1"},
		Delivery:   model.OrderDelivery{DateMS: orderWednesday},
		Status:     model.OrderStatusProcessing,
		Item:       model.OrderItem{Name: "Pad Thai", Total: 25},
		Payment:    &model.OrderPayment{IntentID: "pi_1", Amount: 50},
	}
}

func cancelFixture(order *model.Order, scheduleStatus model.ScheduleStatus) (test.OrderRepositoryStub, test.RestaurantRepositoryStub) {
	orders := test.OrderRepositoryStub{
		ByIDFn: func(context.Context, string) (*model.Order, error) { return order, nil },
	}
	restaurants := test.RestaurantRepositoryStub{
		ByIDFn: func(context.Context, string) (*model.Restaurant, error) {
			return &model.Restaurant{
				ID: "r1",
				Schedules: []model.Schedule{
					{DateMS: orderWednesday, Status: scheduleStatus, CompanyID: "c1"},
				},
			}, nil
		},
	}
	return orders, restaurants
}

func TestCancelRefundsPartialOverlap(t *testing.T) {
	order := paidOrder()
	orders, restaurants := cancelFixture(order, model.ScheduleStatusActive)
	var savedStatus model.OrderStatus
	orders.SaveFn = func(_ context.Context, o *model.Order) error {
		savedStatus = o.Status
		return nil
	}

	var refunds []float64
	payments := test.PaymentClientStub{
		SumRefundsFn: func(context.Context, string) (float64, error) { return 30, nil },
		RefundFn: func(_ context.Context, intentID string, amount float64) error {
			if intentID != "pi_1" {
				t.Fatalf("unexpected intent: %s", intentID)
			}
			refunds = append(refunds, amount)
			return nil
		},
	}
	locks := &test.LockerStub{}

	uc := newOrderUC(orders, restaurants, test.DiscountRepositoryStub{}, payments, &test.MailerStub{}, locks)
	cancelled, err := uc.Cancel(context.Background(), "cust-1", "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// paid 50, refunded 30: only 20 of headroom remains on the intent even
	// though the line asks for 25.
	if len(refunds) != 1 || refunds[0] != 20 {
		t.Fatalf("expected single refund of 20, got %v", refunds)
	}
	if cancelled.Status != model.OrderStatusCancelled || savedStatus != model.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED persisted, got %v / %v", cancelled.Status, savedStatus)
	}
	if got := locks.Acquired(); len(got) != 1 || got[0] != "pi_1" {
		t.Fatalf("expected lock on pi_1, got %v", got)
	}
}

func TestCancelRefundsAskingWhenHeadroomSuffices(t *testing.T) {
	order := paidOrder()
	orders, restaurants := cancelFixture(order, model.ScheduleStatusActive)

	var refunds []float64
	payments := test.PaymentClientStub{
		SumRefundsFn: func(context.Context, string) (float64, error) { return 10, nil },
		RefundFn: func(_ context.Context, _ string, amount float64) error {
			refunds = append(refunds, amount)
			return nil
		},
	}

	uc := newOrderUC(orders, restaurants, test.DiscountRepositoryStub{}, payments, &test.MailerStub{}, &test.LockerStub{})
	if _, err := uc.Cancel(context.Background(), "cust-1", "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refunds) != 1 || refunds[0] != 25 {
		t.Fatalf("expected refund of asking 25, got %v", refunds)
	}
}

func TestCancelNothingOwedWhenFullyRefunded(t *testing.T) {
	order := paidOrder()
	orders, restaurants := cancelFixture(order, model.ScheduleStatusActive)
	var saved bool
	orders.SaveFn = func(context.Context, *model.Order) error {
		saved = true
		return nil
	}
	payments := test.PaymentClientStub{
		SumRefundsFn: func(context.Context, string) (float64, error) { return 50, nil },
		RefundFn: func(context.Context, string, float64) error {
			t.Fatal("refund not expected")
			return nil
		},
	}

	uc := newOrderUC(orders, restaurants, test.DiscountRepositoryStub{}, payments, &test.MailerStub{}, &test.LockerStub{})
	if _, err := uc.Cancel(context.Background(), "cust-1", "o1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved {
		t.Fatal("expected cancellation persisted")
	}
}

func TestCancelStipendCoveredSkipsProvider(t *testing.T) {
	order := paidOrder()
	order.Payment = nil
	orders, restaurants := cancelFixture(order, model.ScheduleStatusActive)
	payments := test.PaymentClientStub{
		SumRefundsFn: func(context.Context, string) (float64, error) {
			t.Fatal("provider call not expected")
			return 0, nil
		},
	}
	locks := &test.LockerStub{}

	uc := newOrderUC(orders, restaurants, test.DiscountRepositoryStub{}, payments, &test.MailerStub{}, locks)
	cancelled, err := uc.Cancel(context.Background(), "cust-1", "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != model.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED, got %v", cancelled.Status)
	}
	if len(locks.Acquired()) != 0 {
		t.Fatal("lock not expected without a payment intent")
	}
}

func TestCancelClosedSchedule(t *testing.T) {
	order := paidOrder()
	orders, restaurants := cancelFixture(order, model.ScheduleStatusInactive)
	orders.SaveFn = func(context.Context, *model.Order) error {
		t.Fatal("persistence not expected")
		return nil
	}

	uc := newOrderUC(orders, restaurants, test.DiscountRepositoryStub{}, test.PaymentClientStub{}, &test.MailerStub{}, &test.LockerStub{})
	_, err := uc.Cancel(context.Background(), "cust-1", "o1")
	if !errors.Is(err, domainErrors.ErrChangesClosed) {
		t.Fatalf("expected ErrChangesClosed, got %v", err)
	}
}

func TestCancelForeignOrNonProcessingOrder(t *testing.T) {
	order := paidOrder()
	orders, restaurants := cancelFixture(order, model.ScheduleStatusActive)
	uc := newOrderUC(orders, restaurants, test.DiscountRepositoryStub{}, test.PaymentClientStub{}, &test.MailerStub{}, &test.LockerStub{})

	if _, err := uc.Cancel(context.Background(), "someone-else", "o1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	order.Status = model.OrderStatusDelivered
	if _, err := uc.Cancel(context.Background(), "cust-1", "o1"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelRefundFailureKeepsOrderProcessing(t *testing.T) {
	order := paidOrder()
	orders, restaurants := cancelFixture(order, model.ScheduleStatusActive)
	orders.SaveFn = func(context.Context, *model.Order) error {
		t.Fatal("persistence not expected after refund failure")
		return nil
	}
	payments := test.PaymentClientStub{
		SumRefundsFn: func(context.Context, string) (float64, error) { return 10, nil },
		RefundFn: func(context.Context, string, float64) error {
			return domainErrors.ErrPaymentProvider
		},
	}

	uc := newOrderUC(orders, restaurants, test.DiscountRepositoryStub{}, payments, &test.MailerStub{}, &test.LockerStub{})
	_, err := uc.Cancel(context.Background(), "cust-1", "o1")
	if !errors.Is(err, domainErrors.ErrPaymentProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestMarkDeliveredNotifiesEachCustomer(t *testing.T) {
	delivered := []model.Order{
		{ID: "o1", Customer: model.OrderCustomer{Email: "a@corp.example"}, Restaurant: model.OrderRestaurant{Name: "Thai Spoon"}},
		{ID: "o2", Customer: model.OrderCustomer{Email: "b@corp.example"}, Restaurant: model.OrderRestaurant{Name: "Thai Spoon"}},
	}
	orders := test.OrderRepositoryStub{
		MarkDeliveredFn: func(_ context.Context, ids []string) ([]model.Order, error) {
			if len(ids) != 2 {
				t.Fatalf("unexpected ids: %v", ids)
			}
			return delivered, nil
		},
	}
	mail := &test.MailerStub{}

	uc := newOrderUC(orders, test.RestaurantRepositoryStub{}, test.DiscountRepositoryStub{}, test.PaymentClientStub{}, mail, &test.LockerStub{})
	got, err := uc.MarkDelivered(context.Background(), []string{"o1", "o2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two orders, got %d", len(got))
	}
	sent := mail.Sent()
	if len(sent) != 2 || sent[0].To != "a@corp.example" || sent[1].To != "b@corp.example" {
		t.Fatalf("unexpected notifications: %+v", sent)
	}
}

func TestMarkDeliveredNotificationFailurePropagates(t *testing.T) {
	orders := test.OrderRepositoryStub{
		MarkDeliveredFn: func(context.Context, []string) ([]model.Order, error) {
			return []model.Order{{ID: "o1"}}, nil
		},
	}
	mail := &test.MailerStub{
		SendFn: func(context.Context, mailer.Message) error { return errors.New("smtp down") },
	}

	uc := newOrderUC(orders, test.RestaurantRepositoryStub{}, test.DiscountRepositoryStub{}, test.PaymentClientStub{}, mail, &test.LockerStub{})
	if _, err := uc.MarkDelivered(context.Background(), []string{"o1"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestMarkDeliveredEmptyInput(t *testing.T) {
	uc := newOrderUC(test.OrderRepositoryStub{}, test.RestaurantRepositoryStub{}, test.DiscountRepositoryStub{}, test.PaymentClientStub{}, &test.MailerStub{}, &test.LockerStub{})
	if _, err := uc.MarkDelivered(context.Background(), nil); !errors.Is(err, domainErrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestArchiveNotifiesCustomer(t *testing.T) {
	orders := test.OrderRepositoryStub{
		UpdateStatusFn: func(_ context.Context, id string, from, to model.OrderStatus) (*model.Order, error) {
			if from != model.OrderStatusProcessing || to != model.OrderStatusArchived {
				t.Fatalf("unexpected transition: %v -> %v", from, to)
			}
			return &model.Order{ID: id, Status: to, Customer: model.OrderCustomer{Email: "jo@corp.example"}}, nil
		},
	}
	mail := &test.MailerStub{}

	uc := newOrderUC(orders, test.RestaurantRepositoryStub{}, test.DiscountRepositoryStub{}, test.PaymentClientStub{}, mail, &test.LockerStub{})
	archived, err := uc.Archive(context.Background(), "o1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if archived.Status != model.OrderStatusArchived {
		t.Fatalf("expected ARCHIVED, got %v", archived.Status)
	}
	if sent := mail.Sent(); len(sent) != 1 || sent[0].To != "jo@corp.example" {
		t.Fatalf("unexpected notifications: %+v", sent)
	}
}
