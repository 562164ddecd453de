package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/domain/repository"
	"github.com/feasthq/mealdesk/internal/pkg/clock"
)

// sweepHorizon bounds how far ahead the periodic capacity sweep looks.
const sweepHorizon = 28 * 24 * time.Hour

// ScheduleSlot identifies one orderable slot and the owning restaurant's cap.
type ScheduleSlot struct {
	RestaurantID  string
	CompanyID     string
	DateMS        int64
	OrderCapacity int
}

// SlotsFromSnapshot extracts the distinct slots of a catalog snapshot.
func SlotsFromSnapshot(snapshot []model.UpcomingRestaurant) []ScheduleSlot {
	seen := make(map[ScheduleSlot]bool, len(snapshot))
	slots := make([]ScheduleSlot, 0, len(snapshot))
	for _, row := range snapshot {
		s := ScheduleSlot{
			RestaurantID:  row.RestaurantID,
			CompanyID:     row.CompanyID,
			DateMS:        row.DateMS,
			OrderCapacity: row.OrderCapacity,
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		slots = append(slots, s)
	}
	return slots
}

// CapacityGovernor deactivates schedule slots whose committed order quantity
// has reached the restaurant's capacity. Enforcement is advisory: orders
// already accepted stand, the slot just stops taking new ones.
type CapacityGovernor struct {
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
	clock       clock.Clock
	logger      *slog.Logger
}

// NewCapacityGovernor constructs CapacityGovernor.
func NewCapacityGovernor(o repository.OrderRepository, r repository.RestaurantRepository, c clock.Clock, l *slog.Logger) *CapacityGovernor {
	return &CapacityGovernor{orders: o, restaurants: r, clock: c, logger: l}
}

// Enforce sums PROCESSING order quantity per slot and flips saturated slots
// INACTIVE. Individual flip failures are logged, not propagated.
func (g *CapacityGovernor) Enforce(ctx context.Context, slots []ScheduleSlot) error {
	if len(slots) == 0 {
		return nil
	}

	restaurantIDs, companyIDs, dates := slotDimensions(slots)
	active, err := g.orders.ActiveForSlots(ctx, restaurantIDs, companyIDs, dates)
	if err != nil {
		return err
	}

	type key struct {
		restaurantID string
		companyID    string
		dateMS       int64
	}
	quantities := make(map[key]int)
	for i := range active {
		o := &active[i]
		quantities[key{o.Restaurant.ID, o.Company.ID, o.Delivery.DateMS}] += o.Item.Quantity
	}

	for _, s := range slots {
		if s.OrderCapacity <= 0 {
			continue
		}
		if quantities[key{s.RestaurantID, s.CompanyID, s.DateMS}] < s.OrderCapacity {
			continue
		}
		err := g.restaurants.SetScheduleStatus(ctx, s.RestaurantID, s.DateMS, s.CompanyID, model.ScheduleStatusInactive)
		if err != nil {
			g.logger.Error("failed to deactivate saturated schedule",
				slog.String("restaurant_id", s.RestaurantID),
				slog.String("company_id", s.CompanyID),
				slog.Int64("date_ms", s.DateMS),
				slog.String("error", err.Error()),
			)
			continue
		}
		g.logger.Info("schedule deactivated at capacity",
			slog.String("restaurant_id", s.RestaurantID),
			slog.String("company_id", s.CompanyID),
			slog.Int64("date_ms", s.DateMS),
			slog.Int("capacity", s.OrderCapacity),
		)
	}
	return nil
}

// SweepUpcoming enforces capacity across every upcoming ACTIVE slot within
// the sweep horizon, regardless of company.
func (g *CapacityGovernor) SweepUpcoming(ctx context.Context) error {
	now := g.clock.Now()
	fromMS := model.DateToMS(now)
	toMS := model.DateToMS(now.Add(sweepHorizon))

	aggregates, err := g.restaurants.ListScheduledBetween(ctx, fromMS, toMS)
	if err != nil {
		return err
	}

	var slots []ScheduleSlot
	for i := range aggregates {
		r := &aggregates[i]
		for _, s := range r.Schedules {
			if s.Status != model.ScheduleStatusActive || s.DateMS < fromMS || s.DateMS > toMS {
				continue
			}
			slots = append(slots, ScheduleSlot{
				RestaurantID:  r.ID,
				CompanyID:     s.CompanyID,
				DateMS:        s.DateMS,
				OrderCapacity: r.OrderCapacity,
			})
		}
	}
	return g.Enforce(ctx, slots)
}

func slotDimensions(slots []ScheduleSlot) (restaurantIDs, companyIDs []string, dates []int64) {
	seenRestaurant := make(map[string]bool)
	seenCompany := make(map[string]bool)
	seenDate := make(map[int64]bool)
	for _, s := range slots {
		if !seenRestaurant[s.RestaurantID] {
			seenRestaurant[s.RestaurantID] = true
			restaurantIDs = append(restaurantIDs, s.RestaurantID)
		}
		if !seenCompany[s.CompanyID] {
			seenCompany[s.CompanyID] = true
			companyIDs = append(companyIDs, s.CompanyID)
		}
		if !seenDate[s.DateMS] {
			seenDate[s.DateMS] = true
			dates = append(dates, s.DateMS)
		}
	}
	return restaurantIDs, companyIDs, dates
}
