package model

// CartLine is one client-submitted cart entry before validation. Addon
// selections arrive in the legacy "label-price" form and are normalized to
// base labels during validation and pricing.
type CartLine struct {
	ItemID             string
	Quantity           int
	RestaurantID       string
	CompanyID          string
	DeliveryDateMS     int64
	OptionalAddons     []string
	RequiredAddons     []string
	RemovedIngredients []string
}
