package usecase

import (
	"strings"

	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
)

// ValidateCart checks every line against the catalog snapshot. A line passes
// only when its (restaurant, company, date) slot exists in the snapshot, the
// item is on that slot's menu, addon selections stay within the item's
// addable limits and declared labels, and every removed ingredient is
// declared removable. Any failing line rejects the whole cart; nothing is
// persisted on failure.
func ValidateCart(lines []model.CartLine, snapshot []model.UpcomingRestaurant) error {
	for i := range lines {
		if !lineValid(&lines[i], snapshot) {
			return domainErrors.ErrInvalidCart
		}
	}
	return nil
}

func lineValid(line *model.CartLine, snapshot []model.UpcomingRestaurant) bool {
	slot := findSlot(snapshot, line.RestaurantID, line.CompanyID, line.DeliveryDateMS)
	if slot == nil {
		return false
	}
	item := findItem(slot.Items, line.ItemID)
	if item == nil {
		return false
	}

	optional := model.NormalizeLabels(line.OptionalAddons)
	if len(optional) > item.OptionalAddons.Addable {
		return false
	}
	for _, label := range optional {
		if !item.OptionalAddons.HasLabel(label) {
			return false
		}
	}

	// Required addons demand an exact count, not an upper bound, but only
	// once the customer selected any. A line with none passes untouched.
	required := model.NormalizeLabels(line.RequiredAddons)
	if len(required) > 0 {
		if len(required) != item.RequiredAddons.Addable {
			return false
		}
		for _, label := range required {
			if !item.RequiredAddons.HasLabel(label) {
				return false
			}
		}
	}

	for _, ing := range line.RemovedIngredients {
		if !containsFold(item.RemovableIngredients, ing) {
			return false
		}
	}
	return true
}

func findSlot(snapshot []model.UpcomingRestaurant, restaurantID, companyID string, dateMS int64) *model.UpcomingRestaurant {
	date := model.TruncateMS(dateMS)
	for i := range snapshot {
		s := &snapshot[i]
		if s.RestaurantID == restaurantID && s.CompanyID == companyID && s.DateMS == date {
			return s
		}
	}
	return nil
}

func findItem(items []model.Item, itemID string) *model.Item {
	for i := range items {
		if items[i].ID == itemID {
			return &items[i]
		}
	}
	return nil
}

func containsFold(haystack []string, needle string) bool {
	needle = strings.TrimSpace(needle)
	for _, h := range haystack {
		if strings.EqualFold(strings.TrimSpace(h), needle) {
			return true
		}
	}
	return false
}
