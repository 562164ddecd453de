package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/domain/repository"
	"github.com/feasthq/mealdesk/internal/pkg/auth"
	"github.com/feasthq/mealdesk/internal/pkg/clock"
)

// AuthUseCase implements customer registration and login.
type AuthUseCase struct {
	customers repository.CustomerRepository
	hasher    auth.PasswordHasher
	tokens    auth.Strategy
	clock     clock.Clock
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(c repository.CustomerRepository, h auth.PasswordHasher, s auth.Strategy, cl clock.Clock) *AuthUseCase {
	return &AuthUseCase{customers: c, hasher: h, tokens: s, clock: cl}
}

// RegisterParams carries a registration request.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a customer account and returns it with a session token.
// New accounts start with no company membership and reminders enabled.
func (u *AuthUseCase) Register(ctx context.Context, p RegisterParams) (*model.Customer, string, error) {
	if p.FirstName == "" || p.Email == "" || p.Password == "" {
		return nil, "", domainErrors.ErrInvalidInput
	}
	hash, err := u.hasher.Hash(p.Password)
	if err != nil {
		return nil, "", err
	}
	customer := &model.Customer{
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Email:              strings.ToLower(strings.TrimSpace(p.Email)),
		PasswordHash:       hash,
		Role:               model.RoleCustomer,
		Status:             "ACTIVE",
		OrderReminderOptIn: true,
		CreatedAt:          u.clock.Now(),
	}
	created, err := u.customers.Create(ctx, customer)
	if err != nil {
		return nil, "", err
	}
	token, err := u.tokens.IssueToken(created.ID)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login authenticates by email and password and returns a session token.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.Customer, string, error) {
	customer, err := u.customers.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := u.hasher.Compare(customer.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	token, err := u.tokens.IssueToken(customer.ID)
	if err != nil {
		return nil, "", err
	}
	return customer, token, nil
}

// ParseToken resolves a session token to the customer id it was issued for.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	return u.tokens.ParseToken(token)
}

// GetByID loads a customer by id.
func (u *AuthUseCase) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	return u.customers.GetByID(ctx, id)
}
