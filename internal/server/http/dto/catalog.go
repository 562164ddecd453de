package dto

import "github.com/feasthq/mealdesk/internal/domain/model"

// AddonResponse is one selectable addon.
type AddonResponse struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// AddonSpecResponse is an addon group with its selection budget.
type AddonSpecResponse struct {
	Addons  []AddonResponse `json:"addons"`
	Addable int             `json:"addable"`
}

// ItemResponse is one orderable menu item.
type ItemResponse struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	Price                float64           `json:"price"`
	Tags                 string            `json:"tags"`
	Description          string            `json:"description"`
	Image                string            `json:"image"`
	OptionalAddons       AddonSpecResponse `json:"optionalAddons"`
	RequiredAddons       AddonSpecResponse `json:"requiredAddons"`
	RemovableIngredients []string          `json:"removableIngredients"`
}

// UpcomingRestaurantResponse is one (restaurant, date) row of the catalog.
type UpcomingRestaurantResponse struct {
	RestaurantID   string         `json:"restaurantId"`
	RestaurantName string         `json:"restaurantName"`
	Logo           string         `json:"logo"`
	Date           int64          `json:"date"`
	CompanyID      string         `json:"companyId"`
	Shift          string         `json:"shift"`
	ScheduleStatus string         `json:"scheduleStatus"`
	Items          []ItemResponse `json:"items"`
}

func toAddonSpecResponse(spec model.AddonSpec) AddonSpecResponse {
	addons := make([]AddonResponse, 0, len(spec.Addons))
	for _, a := range spec.Addons {
		addons = append(addons, AddonResponse{Label: a.Label, Price: a.Price})
	}
	return AddonSpecResponse{Addons: addons, Addable: spec.Addable}
}

// ToUpcomingRestaurantResponse converts one catalog snapshot row.
func ToUpcomingRestaurantResponse(row model.UpcomingRestaurant) UpcomingRestaurantResponse {
	items := make([]ItemResponse, 0, len(row.Items))
	for _, item := range row.Items {
		items = append(items, ItemResponse{
			ID:                   item.ID,
			Name:                 item.Name,
			Price:                item.Price,
			Tags:                 item.Tags,
			Description:          item.Description,
			Image:                item.Image,
			OptionalAddons:       toAddonSpecResponse(item.OptionalAddons),
			RequiredAddons:       toAddonSpecResponse(item.RequiredAddons),
			RemovableIngredients: item.RemovableIngredients,
		})
	}
	return UpcomingRestaurantResponse{
		RestaurantID:   row.RestaurantID,
		RestaurantName: row.RestaurantName,
		Logo:           row.Logo,
		Date:           row.DateMS,
		CompanyID:      row.CompanyID,
		Shift:          string(row.Shift),
		ScheduleStatus: string(row.ScheduleStatus),
		Items:          items,
	}
}
