package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/test"
)

var (
	stipendDate1 = model.DateToMS(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	stipendDate2 = model.DateToMS(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
)

func draft(dateMS int64, name string, total float64) model.Order {
	return model.Order{
		Company:  model.OrderCompany{ID: "c1", Shift: model.ShiftDay},
		Delivery: model.OrderDelivery{DateMS: dateMS},
		Status:   model.OrderStatusProcessing,
		Item:     model.OrderItem{Name: name, Total: total},
	}
}

func TestReconcileFullyCoveredByStipend(t *testing.T) {
	engine := NewStipendEngine(test.OrderRepositoryStub{}, test.DiscountRepositoryStub{})

	recon, err := engine.Reconcile(context.Background(), "cust-1",
		[]model.Order{draft(stipendDate1, "Burger", 12), draft(stipendDate1, "Fries", 8)}, 30, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recon.Groups) != 0 {
		t.Fatalf("expected no payable groups, got %+v", recon.Groups)
	}
	if recon.HasPayableItems {
		t.Fatal("expected no payable items")
	}
}

func TestReconcileCountsExistingActiveOrders(t *testing.T) {
	var gotFrom int64
	orders := test.OrderRepositoryStub{
		ActiveSinceFn: func(_ context.Context, customerID string, fromMS int64) ([]model.Order, error) {
			gotFrom = fromMS
			return []model.Order{draft(stipendDate1, "Earlier", 25)}, nil
		},
	}
	engine := NewStipendEngine(orders, test.DiscountRepositoryStub{})

	recon, err := engine.Reconcile(context.Background(), "cust-1",
		[]model.Order{draft(stipendDate1, "Burger", 12)}, 30, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFrom != stipendDate1 {
		t.Fatalf("expected aggregation from %d, got %d", stipendDate1, gotFrom)
	}
	// 30 - 25 stipend left, so 12 - 5 = 7 remains payable.
	if len(recon.Groups) != 1 || recon.Groups[0].Amount != 7 {
		t.Fatalf("unexpected groups: %+v", recon.Groups)
	}
	if !recon.HasPayableItems {
		t.Fatal("expected payable items")
	}
}

func TestReconcileExhaustedStipendOwesFullTotal(t *testing.T) {
	orders := test.OrderRepositoryStub{
		ActiveSinceFn: func(context.Context, string, int64) ([]model.Order, error) {
			return []model.Order{draft(stipendDate1, "Earlier", 35)}, nil
		},
	}
	engine := NewStipendEngine(orders, test.DiscountRepositoryStub{})

	recon, err := engine.Reconcile(context.Background(), "cust-1",
		[]model.Order{draft(stipendDate1, "Burger", 12)}, 30, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recon.Groups) != 1 || recon.Groups[0].Amount != 12 {
		t.Fatalf("unexpected groups: %+v", recon.Groups)
	}
}

func TestReconcileDiscountSplitsEquallyAcrossPayableDates(t *testing.T) {
	discounts := test.DiscountRepositoryStub{
		ByIDFn: func(_ context.Context, id string) (*model.DiscountCode, error) {
			return &model.DiscountCode{ID: id, Value: 10, Redeemability: model.RedeemOnce}, nil
		},
	}
	engine := NewStipendEngine(test.OrderRepositoryStub{}, discounts)

	recon, err := engine.Reconcile(context.Background(), "cust-1",
		[]model.Order{draft(stipendDate1, "Burger", 20), draft(stipendDate2, "Ramen", 30)}, 0, "dc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recon.Groups) != 2 {
		t.Fatalf("expected two groups, got %+v", recon.Groups)
	}
	if recon.Groups[0].Amount != 15 || recon.Groups[1].Amount != 25 {
		t.Fatalf("expected [15 25], got [%v %v]", recon.Groups[0].Amount, recon.Groups[1].Amount)
	}
	if recon.DiscountAmount != 10 || !recon.HasPayableItems {
		t.Fatalf("unexpected reconciliation: %+v", recon)
	}
}

func TestReconcileUnknownDiscountCode(t *testing.T) {
	engine := NewStipendEngine(test.OrderRepositoryStub{}, test.DiscountRepositoryStub{})

	_, err := engine.Reconcile(context.Background(), "cust-1",
		[]model.Order{draft(stipendDate1, "Burger", 20)}, 0, "missing")
	if !errors.Is(err, domainErrors.ErrInvalidDiscountCode) {
		t.Fatalf("expected ErrInvalidDiscountCode, got %v", err)
	}
}

func TestReconcileSpentCodeContributesZero(t *testing.T) {
	discounts := test.DiscountRepositoryStub{
		ByIDFn: func(_ context.Context, id string) (*model.DiscountCode, error) {
			return &model.DiscountCode{ID: id, Value: 10, Redeemability: model.RedeemOnce, TotalRedeem: 1}, nil
		},
	}
	engine := NewStipendEngine(test.OrderRepositoryStub{}, discounts)

	recon, err := engine.Reconcile(context.Background(), "cust-1",
		[]model.Order{draft(stipendDate1, "Burger", 20)}, 0, "dc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recon.DiscountAmount != 0 {
		t.Fatalf("expected zero discount, got %v", recon.DiscountAmount)
	}
	if len(recon.Groups) != 1 || recon.Groups[0].Amount != 20 {
		t.Fatalf("unexpected groups: %+v", recon.Groups)
	}
}

func TestReconcileDiscountCoversEverything(t *testing.T) {
	discounts := test.DiscountRepositoryStub{
		ByIDFn: func(_ context.Context, id string) (*model.DiscountCode, error) {
			return &model.DiscountCode{ID: id, Value: 10, Redeemability: model.RedeemUnlimited}, nil
		},
	}
	engine := NewStipendEngine(test.OrderRepositoryStub{}, discounts)

	recon, err := engine.Reconcile(context.Background(), "cust-1",
		[]model.Order{draft(stipendDate1, "Burger", 8)}, 0, "dc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recon.HasPayableItems {
		t.Fatal("expected covered batch")
	}
	if len(recon.Groups) != 0 {
		t.Fatalf("expected no groups after discount, got %+v", recon.Groups)
	}
	if recon.DiscountAmount != 10 {
		t.Fatalf("expected discount recorded, got %v", recon.DiscountAmount)
	}
}

func TestReconcileSkipsDiscountLookupWhenNothingPayable(t *testing.T) {
	discounts := test.DiscountRepositoryStub{
		ByIDFn: func(context.Context, string) (*model.DiscountCode, error) {
			t.Fatal("discount lookup not expected")
			return nil, nil
		},
	}
	engine := NewStipendEngine(test.OrderRepositoryStub{}, discounts)

	recon, err := engine.Reconcile(context.Background(), "cust-1",
		[]model.Order{draft(stipendDate1, "Burger", 8)}, 30, "dc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recon.HasPayableItems || recon.DiscountAmount != 0 {
		t.Fatalf("unexpected reconciliation: %+v", recon)
	}
}
