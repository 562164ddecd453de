package repository

import (
	"context"

	"github.com/feasthq/mealdesk/internal/domain/model"
)

// DiscountRepository provides access to discount codes.
type DiscountRepository interface {
	GetByID(ctx context.Context, id string) (*model.DiscountCode, error)
	// IncrementRedemptions bumps the redemption counter by one.
	IncrementRedemptions(ctx context.Context, id string) error
}
