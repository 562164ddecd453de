package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/server/http/dto"
)

// OrderHandler manages the customer-facing order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders. When the stipend covers everything the
// committed orders come back; otherwise the client is redirected to checkout.
func (h *OrderHandler) Create(c *gin.Context) {
	customer := CurrentCustomer(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	lines := make([]model.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, model.CartLine{
			ItemID:             item.ItemID,
			Quantity:           item.Quantity,
			RestaurantID:       item.RestaurantID,
			CompanyID:          item.CompanyID,
			DeliveryDateMS:     item.DeliveryDate,
			OptionalAddons:     item.OptionalAddons,
			RequiredAddons:     item.RequiredAddons,
			RemovedIngredients: item.RemovedIngredients,
		})
	}

	orders, redirectURL, err := h.facade.CreateOrders(c.Request.Context(), customer, lines, req.DiscountCodeID)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		Orders:      dto.ToOrderResponses(orders),
		RedirectURL: redirectURL,
	})
}

// Upcoming handles GET /api/orders/upcoming.
func (h *OrderHandler) Upcoming(c *gin.Context) {
	customer := CurrentCustomer(c)
	orders, err := h.facade.UpcomingOrders(c.Request.Context(), customer.ID)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

// Delivered handles GET /api/orders/delivered.
func (h *OrderHandler) Delivered(c *gin.Context) {
	customer := CurrentCustomer(c)
	orders, err := h.facade.DeliveredOrders(c.Request.Context(), customer.ID, limitQuery(c))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	customer := CurrentCustomer(c)
	order, err := h.facade.CancelOrder(c.Request.Context(), customer.ID, c.Param("id"))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}
