package model

// Redeemability limits how often a discount code may be consumed.
type Redeemability string

const (
	RedeemOnce      Redeemability = "once"
	RedeemUnlimited Redeemability = "unlimited"
)

// DiscountCode is a flat-value discount applied across payable dates.
// TotalRedeem increments once per order-creation transaction that consumed
// the code, regardless of how many dates it was split across.
type DiscountCode struct {
	ID            string
	Code          string
	Value         float64
	Redeemability Redeemability
	TotalRedeem   int
}

// Redeemable reports whether the code may still be consumed.
func (d DiscountCode) Redeemable() bool {
	switch d.Redeemability {
	case RedeemUnlimited:
		return true
	case RedeemOnce:
		return d.TotalRedeem < 1
	}
	return false
}
