package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feasthq/mealdesk/internal/server/http/dto"
)

// AdminHandler manages fulfilment endpoints for admin and vendor roles.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Upcoming handles GET /api/admin/orders/upcoming.
func (h *AdminHandler) Upcoming(c *gin.Context) {
	orders, err := h.facade.AllUpcomingOrders(c.Request.Context())
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

// Delivered handles GET /api/admin/orders/delivered.
func (h *AdminHandler) Delivered(c *gin.Context) {
	orders, err := h.facade.AllDeliveredOrders(c.Request.Context(), limitQuery(c))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

// CustomerDelivered handles GET /api/admin/customers/:id/orders/delivered.
func (h *AdminHandler) CustomerDelivered(c *gin.Context) {
	orders, err := h.facade.DeliveredOrders(c.Request.Context(), c.Param("id"), limitQuery(c))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

// MarkDelivered handles POST /api/admin/orders/delivered.
func (h *AdminHandler) MarkDelivered(c *gin.Context) {
	var req dto.MarkDeliveredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	delivered, err := h.facade.MarkDelivered(c.Request.Context(), req.OrderIDs)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponses(delivered))
}

// Archive handles POST /api/admin/orders/:id/archive.
func (h *AdminHandler) Archive(c *gin.Context) {
	order, err := h.facade.ArchiveOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Status(statusFromError(err))
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(*order))
}
