package errors

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidCart         = errors.New("invalid cart")
	ErrNoActiveShift       = errors.New("no enrolled shift found")
	ErrInvalidDiscountCode = errors.New("invalid discount code")
	ErrChangesClosed       = errors.New("order changes are closed")
	ErrPaymentProvider     = errors.New("payment provider error")
	ErrConflict            = errors.New("conflict")
)
