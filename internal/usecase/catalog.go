package usecase

import (
	"context"
	"sort"

	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/domain/repository"
	"github.com/feasthq/mealdesk/internal/pkg/clock"
)

// ActiveMembership returns the customer's single ACTIVE company membership.
func ActiveMembership(companies []model.Company) (*model.Company, error) {
	for i := range companies {
		if companies[i].Status == model.CompanyStatusActive {
			return &companies[i], nil
		}
	}
	return nil, domainErrors.ErrNoActiveShift
}

// CatalogUseCase builds the upcoming-restaurants snapshot consulted by cart
// validation, pricing and the capacity governor.
type CatalogUseCase struct {
	restaurants repository.RestaurantRepository
	clock       clock.Clock
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(r repository.RestaurantRepository, c clock.Clock) *CatalogUseCase {
	return &CatalogUseCase{restaurants: r, clock: c}
}

// UpcomingRestaurants flattens restaurant aggregates into one row per
// (restaurant, date) slot scheduled for the customer's active company, sorted
// by delivery date. With activeOnly set, INACTIVE slots are dropped.
func (u *CatalogUseCase) UpcomingRestaurants(ctx context.Context, memberships []model.Company, activeOnly bool) ([]model.UpcomingRestaurant, error) {
	company, err := ActiveMembership(memberships)
	if err != nil {
		return nil, err
	}

	todayMS := model.DateToMS(u.clock.Now())
	aggregates, err := u.restaurants.UpcomingByCompany(ctx, company.ID, todayMS, activeOnly)
	if err != nil {
		return nil, err
	}

	var rows []model.UpcomingRestaurant
	for i := range aggregates {
		r := &aggregates[i]
		items := activeItems(r.Items)
		for _, s := range r.Schedules {
			if s.CompanyID != company.ID || s.DateMS < todayMS {
				continue
			}
			if activeOnly && s.Status != model.ScheduleStatusActive {
				continue
			}
			rows = append(rows, model.UpcomingRestaurant{
				RestaurantID:   r.ID,
				RestaurantName: r.Name,
				Logo:           r.Logo,
				OrderCapacity:  r.OrderCapacity,
				Items:          items,
				CompanyID:      s.CompanyID,
				Shift:          s.Shift,
				DateMS:         s.DateMS,
				ScheduleStatus: s.Status,
				ScheduledAt:    s.CreatedAt,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DateMS < rows[j].DateMS })
	return rows, nil
}

// activeItems keeps ACTIVE items ordered by display index, reviews newest
// first. The source slices are never mutated.
func activeItems(items []model.Item) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if it.Status != model.ItemStatusActive {
			continue
		}
		if len(it.Reviews) > 1 {
			reviews := make([]model.Review, len(it.Reviews))
			copy(reviews, it.Reviews)
			sort.SliceStable(reviews, func(i, j int) bool {
				return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
			})
			it.Reviews = reviews
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
