package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/pkg/clock"
	"github.com/feasthq/mealdesk/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func activeOrder(restaurantID, companyID string, dateMS int64, quantity int) model.Order {
	return model.Order{
		Restaurant: model.OrderRestaurant{ID: restaurantID},
		Company:    model.OrderCompany{ID: companyID},
		Delivery:   model.OrderDelivery{DateMS: dateMS},
		Status:     model.OrderStatusProcessing,
		Item:       model.OrderItem{Quantity: quantity},
	}
}

func TestEnforceFlipsSaturatedSlot(t *testing.T) {
	dateMS := model.DateToMS(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	orders := test.OrderRepositoryStub{
		ActiveForSlotsFn: func(context.Context, []string, []string, []int64) ([]model.Order, error) {
			return []model.Order{
				activeOrder("r1", "c1", dateMS, 3),
				activeOrder("r1", "c1", dateMS, 2),
			}, nil
		},
	}

	type flip struct {
		restaurantID string
		companyID    string
		dateMS       int64
		status       model.ScheduleStatus
	}
	var flips []flip
	restaurants := test.RestaurantRepositoryStub{
		SetScheduleStatusFn: func(_ context.Context, restaurantID string, dateMS int64, companyID string, status model.ScheduleStatus) error {
			flips = append(flips, flip{restaurantID, companyID, dateMS, status})
			return nil
		},
	}

	governor := NewCapacityGovernor(orders, restaurants, clock.Fixed(time.Now()), discardLogger())
	err := governor.Enforce(context.Background(), []ScheduleSlot{
		{RestaurantID: "r1", CompanyID: "c1", DateMS: dateMS, OrderCapacity: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(flips) != 1 {
		t.Fatalf("expected one flip, got %d", len(flips))
	}
	got := flips[0]
	if got.restaurantID != "r1" || got.companyID != "c1" || got.dateMS != dateMS || got.status != model.ScheduleStatusInactive {
		t.Fatalf("unexpected flip: %+v", got)
	}
}

func TestEnforceLeavesSlotsBelowCapacity(t *testing.T) {
	dateMS := model.DateToMS(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	orders := test.OrderRepositoryStub{
		ActiveForSlotsFn: func(context.Context, []string, []string, []int64) ([]model.Order, error) {
			return []model.Order{activeOrder("r1", "c1", dateMS, 4)}, nil
		},
	}
	restaurants := test.RestaurantRepositoryStub{
		SetScheduleStatusFn: func(context.Context, string, int64, string, model.ScheduleStatus) error {
			t.Fatal("flip not expected")
			return nil
		},
	}

	governor := NewCapacityGovernor(orders, restaurants, clock.Fixed(time.Now()), discardLogger())
	err := governor.Enforce(context.Background(), []ScheduleSlot{
		{RestaurantID: "r1", CompanyID: "c1", DateMS: dateMS, OrderCapacity: 5},
		{RestaurantID: "r1", CompanyID: "c1", DateMS: dateMS, OrderCapacity: 0},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSweepUpcomingBuildsSlotsFromActiveSchedules(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	dateMS := model.DateToMS(now.AddDate(0, 0, 3))

	restaurants := test.RestaurantRepositoryStub{
		ScheduledBetweenFn: func(_ context.Context, fromMS, toMS int64) ([]model.Restaurant, error) {
			if fromMS != model.DateToMS(now) || toMS <= fromMS {
				t.Fatalf("unexpected window: %d..%d", fromMS, toMS)
			}
			return []model.Restaurant{{
				ID:            "r1",
				OrderCapacity: 2,
				Schedules: []model.Schedule{
					{DateMS: dateMS, Status: model.ScheduleStatusActive, CompanyID: "c1"},
					{DateMS: dateMS, Status: model.ScheduleStatusInactive, CompanyID: "c2"},
				},
			}}, nil
		},
		SetScheduleStatusFn: func(_ context.Context, restaurantID string, _ int64, companyID string, _ model.ScheduleStatus) error {
			if restaurantID != "r1" || companyID != "c1" {
				t.Fatalf("unexpected flip: %s %s", restaurantID, companyID)
			}
			return nil
		},
	}
	orders := test.OrderRepositoryStub{
		ActiveForSlotsFn: func(context.Context, []string, []string, []int64) ([]model.Order, error) {
			return []model.Order{activeOrder("r1", "c1", dateMS, 2)}, nil
		},
	}

	governor := NewCapacityGovernor(orders, restaurants, clock.Fixed(now), discardLogger())
	if err := governor.SweepUpcoming(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSlotsFromSnapshotDeduplicates(t *testing.T) {
	dateMS := model.DateToMS(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	snapshot := []model.UpcomingRestaurant{
		{RestaurantID: "r1", CompanyID: "c1", DateMS: dateMS, OrderCapacity: 5},
		{RestaurantID: "r1", CompanyID: "c1", DateMS: dateMS, OrderCapacity: 5},
		{RestaurantID: "r2", CompanyID: "c1", DateMS: dateMS, OrderCapacity: 3},
	}
	slots := SlotsFromSnapshot(snapshot)
	if len(slots) != 2 {
		t.Fatalf("expected two slots, got %+v", slots)
	}
}
