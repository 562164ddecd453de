package model

import "time"

// ItemStatus describes menu item availability.
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "ACTIVE"
	ItemStatusArchived ItemStatus = "ARCHIVED"
)

// ScheduleStatus describes a date×company availability slot.
type ScheduleStatus string

const (
	ScheduleStatusActive   ScheduleStatus = "ACTIVE"
	ScheduleStatusInactive ScheduleStatus = "INACTIVE"
)

// Review is a customer review on a menu item.
type Review struct {
	CustomerID string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// Item is one entry on a restaurant menu. Items live inside their restaurant
// aggregate and have no independent identity.
type Item struct {
	ID                   string
	Name                 string
	Price                float64
	Tags                 string
	Description          string
	Image                string
	Status               ItemStatus
	Index                int
	OptionalAddons       AddonSpec
	RequiredAddons       AddonSpec
	RemovableIngredients []string
	Reviews              []Review
}

// Schedule binds a restaurant to one delivery date for one company.
type Schedule struct {
	DateMS             int64
	Status             ScheduleStatus
	CompanyID          string
	CompanyName        string
	Shift              Shift
	CreatedAt          time.Time
	DeactivatedByAdmin bool
}

// Restaurant is the catalog aggregate root owning its items and schedules.
// An OrderCapacity of zero means unbounded.
type Restaurant struct {
	ID            string
	Name          string
	Logo          string
	Address       Address
	IsFeatured    bool
	OrderCapacity int
	Items         []Item
	Schedules     []Schedule
	CreatedAt     time.Time
}

// FindItem looks an item up by id within the aggregate.
func (r *Restaurant) FindItem(itemID string) (*Item, bool) {
	for i := range r.Items {
		if r.Items[i].ID == itemID {
			return &r.Items[i], true
		}
	}
	return nil, false
}

// HasActiveSchedule reports whether the restaurant still accepts changes for
// the given delivery date.
func (r *Restaurant) HasActiveSchedule(dateMS int64) bool {
	for _, s := range r.Schedules {
		if s.Status == ScheduleStatusActive && s.DateMS == dateMS {
			return true
		}
	}
	return false
}

// UpcomingRestaurant is one orderable (restaurant, date, company) row of the
// catalog snapshot consulted by cart validation and pricing.
type UpcomingRestaurant struct {
	RestaurantID   string
	RestaurantName string
	Logo           string
	OrderCapacity  int
	Items          []Item
	CompanyID      string
	Shift          Shift
	DateMS         int64
	ScheduleStatus ScheduleStatus
	ScheduledAt    time.Time
}
