package model

import "time"

// OrderStatus describes the order lifecycle. PENDING orders await external
// payment confirmation and never count toward stipend or capacity totals.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusArchived   OrderStatus = "ARCHIVED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Active reports whether the order counts toward budget aggregation.
func (s OrderStatus) Active() bool {
	switch s {
	case OrderStatusPending, OrderStatusArchived, OrderStatusCancelled:
		return false
	}
	return true
}

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusArchived, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderCustomer is the customer snapshot stored on an order.
type OrderCustomer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}

// OrderRestaurant is the restaurant snapshot stored on an order.
type OrderRestaurant struct {
	ID   string
	Name string
}

// OrderCompany is the company snapshot stored on an order.
type OrderCompany struct {
	ID    string
	Name  string
	Shift Shift
}

// OrderDelivery carries the delivery date and the address snapshotted at
// order time; later company edits never alter historical orders.
type OrderDelivery struct {
	DateMS  int64
	Address Address
}

// OrderItem is the purchased line: addon and removed-ingredient labels are
// stored pre-sorted and comma-joined, total is rounded once per line.
type OrderItem struct {
	ID                 string
	Name               string
	Tags               string
	Description        string
	Image              string
	Quantity           int
	OptionalAddons     string
	RequiredAddons     string
	RemovedIngredients string
	Total              float64
}

// OrderPayment references the external payment intent and the amount actually
// captured for this order; set only when payment collection was required.
type OrderPayment struct {
	IntentID string
	Amount   float64
}

// Order is one purchased line item.
type Order struct {
	ID             string
	Customer       OrderCustomer
	Restaurant     OrderRestaurant
	Company        OrderCompany
	Delivery       OrderDelivery
	Status         OrderStatus
	Item           OrderItem
	PendingOrderID string
	Payment        *OrderPayment
	IsReviewed     bool
	CreatedAt      time.Time
}
