package model

import "time"

// Role partitions the API surface.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleVendor   Role = "VENDOR"
	RoleCustomer Role = "CUSTOMER"
)

// Customer is a registered user together with their company memberships.
type Customer struct {
	ID                 string
	FirstName          string
	LastName           string
	Email              string
	PasswordHash       string
	Role               Role
	Status             string
	Companies          []Company
	OrderReminderOptIn bool
	CreatedAt          time.Time
}
