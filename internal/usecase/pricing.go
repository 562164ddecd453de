package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/feasthq/mealdesk/internal/domain/model"
)

// round2 rounds a monetary amount to two decimal places, half away from zero.
func round2(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}

// LineTotal prices one cart line: base price plus every selected addon,
// multiplied by quantity. Rounding happens once on the aggregate, never on
// intermediate sums, so resolving the same line twice yields the same total.
// Labels must already be normalized; unknown labels contribute zero.
func LineTotal(item *model.Item, optional, required []string, quantity int) float64 {
	total := decimal.NewFromFloat(item.Price)
	for _, label := range optional {
		total = total.Add(decimal.NewFromFloat(item.OptionalAddons.PriceOf(label)))
	}
	for _, label := range required {
		total = total.Add(decimal.NewFromFloat(item.RequiredAddons.PriceOf(label)))
	}
	out, _ := total.Mul(decimal.NewFromInt(int64(quantity))).Round(2).Float64()
	return out
}
