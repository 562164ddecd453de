package model

// Shift labels a company's ordering window.
type Shift string

const (
	ShiftDay   Shift = "day"
	ShiftNight Shift = "night"
)

// CompanyStatus describes whether a membership grants ordering rights.
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "ACTIVE"
	CompanyStatusArchived CompanyStatus = "ARCHIVED"
)

// Address is a delivery address snapshotted onto orders at creation time.
type Address struct {
	City         string
	State        string
	Zip          string
	AddressLine1 string
	AddressLine2 string
}

// Company is a customer's membership in a subscribed company. A customer may
// hold several memberships but at most one is ACTIVE at a time.
type Company struct {
	ID      string
	Name    string
	Code    string
	Shift   Shift
	Stipend float64
	Address Address
	Status  CompanyStatus
}
