package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feasthq/mealdesk/internal/server/http/dto"
)

// CatalogHandler serves the upcoming-restaurant snapshot.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Upcoming handles GET /api/restaurants/upcoming. By default only ACTIVE
// schedules are returned; ?all=true includes deactivated slots for browsing.
func (h *CatalogHandler) Upcoming(c *gin.Context) {
	customer := CurrentCustomer(c)
	activeOnly := c.Query("all") != "true"

	rows, err := h.facade.UpcomingRestaurants(c.Request.Context(), customer, activeOnly)
	if err != nil {
		c.Status(statusFromError(err))
		return
	}

	response := make([]dto.UpcomingRestaurantResponse, 0, len(rows))
	for _, row := range rows {
		response = append(response, dto.ToUpcomingRestaurantResponse(row))
	}
	c.JSON(http.StatusOK, response)
}
