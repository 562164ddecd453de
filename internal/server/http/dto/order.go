package dto

import "github.com/feasthq/mealdesk/internal/domain/model"

// OrderLineRequest is one cart line as submitted by the client. Addon
// selections arrive in the legacy "label-price" form.
type OrderLineRequest struct {
	ItemID             string   `json:"itemId"`
	Quantity           int      `json:"quantity"`
	RestaurantID       string   `json:"restaurantId"`
	CompanyID          string   `json:"companyId"`
	DeliveryDate       int64    `json:"deliveryDate"`
	OptionalAddons     []string `json:"optionalAddons"`
	RequiredAddons     []string `json:"requiredAddons"`
	RemovedIngredients []string `json:"removedIngredients"`
}

// CreateOrderRequest is the order creation payload.
type CreateOrderRequest struct {
	Items          []OrderLineRequest `json:"items"`
	DiscountCodeID string             `json:"discountCodeId"`
}

// CreateOrderResponse carries either the committed orders or the checkout
// redirect URL when payment is required.
type CreateOrderResponse struct {
	Orders      []OrderResponse `json:"orders,omitempty"`
	RedirectURL string          `json:"redirectUrl,omitempty"`
}

// MarkDeliveredRequest is the bulk fulfilment payload.
type MarkDeliveredRequest struct {
	OrderIDs []string `json:"orderIds"`
}

// OrderResponse is one order line as exposed to the client.
type OrderResponse struct {
	ID                 string  `json:"id"`
	CustomerName       string  `json:"customerName"`
	RestaurantName     string  `json:"restaurantName"`
	CompanyName        string  `json:"companyName"`
	Shift              string  `json:"shift"`
	DeliveryDate       int64   `json:"deliveryDate"`
	Status             string  `json:"status"`
	ItemName           string  `json:"itemName"`
	Image              string  `json:"image"`
	Quantity           int     `json:"quantity"`
	OptionalAddons     string  `json:"optionalAddons"`
	RequiredAddons     string  `json:"requiredAddons"`
	RemovedIngredients string  `json:"removedIngredients"`
	Total              float64 `json:"total"`
}

// ToOrderResponse converts a domain order for the wire.
func ToOrderResponse(o model.Order) OrderResponse {
	return OrderResponse{
		ID:                 o.ID,
		CustomerName:       o.Customer.FirstName + " " + o.Customer.LastName,
		RestaurantName:     o.Restaurant.Name,
		CompanyName:        o.Company.Name,
		Shift:              string(o.Company.Shift),
		DeliveryDate:       o.Delivery.DateMS,
		Status:             string(o.Status),
		ItemName:           o.Item.Name,
		Image:              o.Item.Image,
		Quantity:           o.Item.Quantity,
		OptionalAddons:     o.Item.OptionalAddons,
		RequiredAddons:     o.Item.RequiredAddons,
		RemovedIngredients: o.Item.RemovedIngredients,
		Total:              o.Item.Total,
	}
}

// ToOrderResponses converts a batch.
func ToOrderResponses(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out
}
