package repository

import (
	"context"

	"github.com/feasthq/mealdesk/internal/domain/model"
)

// CustomerRepository describes persistence operations for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) (*model.Customer, error)
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	GetByID(ctx context.Context, id string) (*model.Customer, error)
	ListReminderSubscribers(ctx context.Context) ([]model.Customer, error)
}
