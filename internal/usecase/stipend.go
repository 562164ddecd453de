package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/domain/repository"
)

// PayableGroup is the amount still owed for one delivery slot after stipend
// and discount are applied.
type PayableGroup struct {
	DateMS    int64
	CompanyID string
	Shift     model.Shift
	ItemNames []string
	Amount    float64
}

// Reconciliation is the outcome of running a draft batch against the
// customer's stipend.
type Reconciliation struct {
	Groups         []PayableGroup
	DiscountCodeID string
	DiscountAmount float64
	// HasPayableItems reports whether the batch must go through payment
	// collection: the payable total before the discount split exceeds the
	// discount amount.
	HasPayableItems bool
}

// StipendEngine reconciles draft orders against the per-shift stipend.
type StipendEngine struct {
	orders    repository.OrderRepository
	discounts repository.DiscountRepository
}

// NewStipendEngine constructs StipendEngine.
func NewStipendEngine(o repository.OrderRepository, d repository.DiscountRepository) *StipendEngine {
	return &StipendEngine{orders: o, discounts: d}
}

type slotKey struct {
	dateMS    int64
	companyID string
}

// Reconcile groups drafts by (date, company), subtracts whatever stipend
// remains per slot given the customer's existing active orders, then splits
// the discount evenly across the slots still owing money. Slots fully
// covered by stipend or discount are dropped from the result. A discount
// code id that resolves to no code fails with ErrInvalidDiscountCode; a code
// that exists but is no longer redeemable silently contributes zero.
func (e *StipendEngine) Reconcile(ctx context.Context, customerID string, drafts []model.Order, stipend float64, discountCodeID string) (*Reconciliation, error) {
	totals := make(map[slotKey]*PayableGroup)
	var keys []slotKey
	var minDateMS int64
	for i := range drafts {
		d := &drafts[i]
		k := slotKey{d.Delivery.DateMS, d.Company.ID}
		g, ok := totals[k]
		if !ok {
			g = &PayableGroup{DateMS: d.Delivery.DateMS, CompanyID: d.Company.ID, Shift: d.Company.Shift}
			totals[k] = g
			keys = append(keys, k)
		}
		g.Amount += d.Item.Total
		g.ItemNames = append(g.ItemNames, d.Item.Name)
		if minDateMS == 0 || d.Delivery.DateMS < minDateMS {
			minDateMS = d.Delivery.DateMS
		}
	}

	spent := make(map[slotKey]float64)
	if len(keys) > 0 {
		active, err := e.orders.ActiveSince(ctx, customerID, minDateMS)
		if err != nil {
			return nil, err
		}
		for i := range active {
			k := slotKey{active[i].Delivery.DateMS, active[i].Company.ID}
			if _, tracked := totals[k]; tracked {
				spent[k] += active[i].Item.Total
			}
		}
	}

	payable := make([]PayableGroup, 0, len(keys))
	for _, k := range keys {
		g := totals[k]
		owed := g.Amount
		// A slot that has already consumed the full stipend owes its whole
		// new total; otherwise only the part above the remaining stipend.
		if spent[k] < stipend {
			owed = g.Amount - (stipend - spent[k])
		}
		if owed <= 0 {
			continue
		}
		g.Amount = round2(owed)
		payable = append(payable, *g)
	}

	recon := &Reconciliation{Groups: payable, DiscountCodeID: discountCodeID}
	if discountCodeID != "" && len(payable) > 0 {
		code, err := e.discounts.GetByID(ctx, discountCodeID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.ErrInvalidDiscountCode
			}
			return nil, err
		}
		if code.Redeemable() {
			recon.DiscountAmount = code.Value
		}
	}

	recon.HasPayableItems = recon.totalPayable() > recon.DiscountAmount

	if recon.DiscountAmount > 0 && len(recon.Groups) > 0 {
		share := recon.DiscountAmount / float64(len(recon.Groups))
		discounted := recon.Groups[:0]
		for _, g := range recon.Groups {
			g.Amount = round2(g.Amount - share)
			if g.Amount <= 0 {
				continue
			}
			discounted = append(discounted, g)
		}
		recon.Groups = discounted
	}
	return recon, nil
}

func (r *Reconciliation) totalPayable() float64 {
	var total float64
	for _, g := range r.Groups {
		total += g.Amount
	}
	return round2(total)
}
