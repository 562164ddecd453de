package repository

import (
	"context"

	"github.com/feasthq/mealdesk/internal/domain/model"
)

// RestaurantRepository provides access to the catalog aggregates.
// Schedule mutations go through the whole aggregate, never a child alone.
type RestaurantRepository interface {
	GetByID(ctx context.Context, id string) (*model.Restaurant, error)
	// UpcomingByCompany returns restaurants holding at least one schedule for
	// the company at or after fromMS. With activeOnly set, only ACTIVE
	// schedule entries qualify.
	UpcomingByCompany(ctx context.Context, companyID string, fromMS int64, activeOnly bool) ([]model.Restaurant, error)
	// ListScheduledBetween returns restaurants with any ACTIVE schedule in
	// [fromMS, toMS], regardless of company.
	ListScheduledBetween(ctx context.Context, fromMS, toMS int64) ([]model.Restaurant, error)
	// SetScheduleStatus flips the status of the schedule entry matching
	// (dateMS, companyID) via read-modify-write on the aggregate.
	SetScheduleStatus(ctx context.Context, restaurantID string, dateMS int64, companyID string, status model.ScheduleStatus) error
}
