package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/feasthq/mealdesk/internal/adapter/mailer"
	"github.com/feasthq/mealdesk/internal/adapter/payment"
	domainErrors "github.com/feasthq/mealdesk/internal/domain/errors"
	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/domain/repository"
	"github.com/feasthq/mealdesk/internal/pkg/clock"
)

// IntentLocker serializes refund computation per payment intent. Two
// concurrent cancellations sharing one intent must not both read a stale
// refunded total.
type IntentLocker interface {
	Acquire(ctx context.Context, intentID string) (func(), error)
}

// CreateResult is the outcome of an order creation: either committed orders
// (stipend/discount covered everything) or a payment redirect URL for a
// batch parked as PENDING.
type CreateResult struct {
	Orders      []model.Order
	RedirectURL string
}

// OrderUseCase orchestrates order commit, payment deferral and cancellation.
type OrderUseCase struct {
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
	discounts   repository.DiscountRepository
	catalog     *CatalogUseCase
	stipend     *StipendEngine
	capacity    *CapacityGovernor
	payments    payment.Client
	mail        mailer.Mailer
	locks       IntentLocker
	clock       clock.Clock
	logger      *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	restaurants repository.RestaurantRepository,
	discounts repository.DiscountRepository,
	catalog *CatalogUseCase,
	stipend *StipendEngine,
	capacity *CapacityGovernor,
	payments payment.Client,
	mail mailer.Mailer,
	locks IntentLocker,
	c clock.Clock,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:      orders,
		restaurants: restaurants,
		discounts:   discounts,
		catalog:     catalog,
		stipend:     stipend,
		capacity:    capacity,
		payments:    payments,
		mail:        mail,
		locks:       locks,
		clock:       c,
		logger:      logger,
	}
}

// Create validates the cart against the live catalog, prices it, reconciles
// it against the stipend and either commits the lines as PROCESSING or parks
// them as PENDING behind a checkout session. All validation happens before
// any side effect.
func (u *OrderUseCase) Create(ctx context.Context, customer *model.Customer, lines []model.CartLine, discountCodeID string) (*CreateResult, error) {
	if len(lines) == 0 {
		return nil, domainErrors.ErrInvalidInput
	}
	for i := range lines {
		l := &lines[i]
		if l.ItemID == "" || l.RestaurantID == "" || l.CompanyID == "" || l.Quantity <= 0 || l.DeliveryDateMS <= 0 {
			return nil, domainErrors.ErrInvalidInput
		}
	}

	company, err := ActiveMembership(customer.Companies)
	if err != nil {
		return nil, err
	}
	snapshot, err := u.catalog.UpcomingRestaurants(ctx, customer.Companies, true)
	if err != nil {
		return nil, err
	}
	if err := ValidateCart(lines, snapshot); err != nil {
		return nil, err
	}

	drafts := buildDrafts(customer, company, lines, snapshot, u.clock.Now())
	recon, err := u.stipend.Reconcile(ctx, customer.ID, drafts, company.Stipend, discountCodeID)
	if err != nil {
		return nil, err
	}

	if recon.HasPayableItems {
		return u.deferToPayment(ctx, customer, drafts, recon)
	}

	created, err := u.orders.InsertMany(ctx, drafts)
	if err != nil {
		return nil, err
	}
	// The discount was consumed in full by this commit; one increment per
	// transaction, however many dates it was split across.
	if recon.DiscountAmount > 0 {
		if err := u.discounts.IncrementRedemptions(ctx, recon.DiscountCodeID); err != nil {
			return nil, err
		}
	}
	if err := u.capacity.Enforce(ctx, SlotsFromSnapshot(snapshot)); err != nil {
		u.logger.Error("capacity enforcement after commit failed", slog.String("error", err.Error()))
	}

	u.logger.Info("orders committed",
		slog.String("customer_id", customer.ID),
		slog.Int("count", len(created)),
	)
	return &CreateResult{Orders: created}, nil
}

func (u *OrderUseCase) deferToPayment(ctx context.Context, customer *model.Customer, drafts []model.Order, recon *Reconciliation) (*CreateResult, error) {
	pendingID := uuid.NewString()

	items := make([]payment.LineItem, 0, len(recon.Groups))
	for _, g := range recon.Groups {
		items = append(items, payment.LineItem{
			Label:       model.DateLabel(g.DateMS) + " - " + shiftLabel(g.Shift),
			Description: strings.Join(g.ItemNames, ", "),
			AmountMinor: payment.MinorUnits(g.Amount),
		})
	}

	session, err := u.payments.CreateCheckoutSession(ctx, payment.CheckoutParams{
		CustomerEmail:  customer.Email,
		PendingOrderID: pendingID,
		DiscountCodeID: recon.DiscountCodeID,
		DiscountAmount: recon.DiscountAmount,
		LineItems:      items,
	})
	if err != nil {
		return nil, err
	}

	for i := range drafts {
		drafts[i].Status = model.OrderStatusPending
		drafts[i].PendingOrderID = pendingID
	}
	if _, err := u.orders.InsertMany(ctx, drafts); err != nil {
		return nil, err
	}

	u.logger.Info("orders deferred to payment",
		slog.String("customer_id", customer.ID),
		slog.String("pending_order_id", pendingID),
		slog.Int("count", len(drafts)),
	)
	return &CreateResult{RedirectURL: session.RedirectURL}, nil
}

// Cancel transitions one PROCESSING order to CANCELLED, refunding whatever
// the shared payment intent still owes. Only the owning customer may cancel,
// and only while the restaurant's schedule for that date is still ACTIVE.
func (u *OrderUseCase) Cancel(ctx context.Context, customerID, orderID string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Customer.ID != customerID || order.Status != model.OrderStatusProcessing {
		return nil, domainErrors.ErrNotFound
	}

	restaurant, err := u.restaurants.GetByID(ctx, order.Restaurant.ID)
	if err != nil {
		return nil, err
	}
	if !restaurant.HasActiveSchedule(order.Delivery.DateMS) {
		return nil, domainErrors.ErrChangesClosed
	}

	// Status is persisted only after the refund resolves; a provider failure
	// leaves the order PROCESSING.
	if order.Payment != nil {
		if err := u.refundOnCancel(ctx, order); err != nil {
			return nil, err
		}
	}

	order.Status = model.OrderStatusCancelled
	if err := u.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	u.logger.Info("order cancelled",
		slog.String("order_id", order.ID),
		slog.String("customer_id", customerID),
	)
	return order, nil
}

// refundOnCancel refunds this line's total, capped by the headroom left on
// the shared intent. Other lines on the same intent may already have
// consumed refund capacity.
func (u *OrderUseCase) refundOnCancel(ctx context.Context, order *model.Order) error {
	release, err := u.locks.Acquire(ctx, order.Payment.IntentID)
	if err != nil {
		return err
	}
	defer release()

	refunded, err := u.payments.SumSucceededRefunds(ctx, order.Payment.IntentID)
	if err != nil {
		return err
	}

	paid := order.Payment.Amount
	asking := order.Item.Total
	switch {
	case paid <= refunded:
		return nil
	case paid >= refunded+asking:
		return u.payments.IssueRefund(ctx, order.Payment.IntentID, asking)
	default:
		return u.payments.IssueRefund(ctx, order.Payment.IntentID, round2(paid-refunded))
	}
}

// UpcomingByCustomer lists the customer's PROCESSING orders, earliest
// delivery first.
func (u *OrderUseCase) UpcomingByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID, model.OrderStatusProcessing, 0, true)
}

// DeliveredByCustomer lists the customer's delivered orders, newest first.
// A non-positive limit means no limit.
func (u *OrderUseCase) DeliveredByCustomer(ctx context.Context, customerID string, limit int) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID, model.OrderStatusDelivered, limit, false)
}

// AllUpcoming lists every PROCESSING order, earliest delivery first.
func (u *OrderUseCase) AllUpcoming(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListByStatus(ctx, model.OrderStatusProcessing, 0, true)
}

// AllDelivered lists delivered orders across customers, newest first.
func (u *OrderUseCase) AllDelivered(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.ListByStatus(ctx, model.OrderStatusDelivered, limit, false)
}

// MarkDelivered bulk-transitions PROCESSING orders to DELIVERED and emails
// each affected customer. A notification failure propagates.
func (u *OrderUseCase) MarkDelivered(ctx context.Context, orderIDs []string) ([]model.Order, error) {
	if len(orderIDs) == 0 {
		return nil, domainErrors.ErrInvalidInput
	}
	delivered, err := u.orders.MarkDelivered(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range delivered {
		if err := u.mail.Send(ctx, mailer.OrderDelivered(delivered[i])); err != nil {
			return nil, fmt.Errorf("notify delivery: %w", err)
		}
	}
	return delivered, nil
}

// Archive cancels one PROCESSING order on the vendor's or admin's behalf and
// emails the customer. A notification failure propagates.
func (u *OrderUseCase) Archive(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatusProcessing, model.OrderStatusArchived)
	if err != nil {
		return nil, err
	}
	if err := u.mail.Send(ctx, mailer.OrderArchived(*order)); err != nil {
		return nil, fmt.Errorf("notify archive: %w", err)
	}
	return order, nil
}

func buildDrafts(customer *model.Customer, company *model.Company, lines []model.CartLine, snapshot []model.UpcomingRestaurant, now time.Time) []model.Order {
	drafts := make([]model.Order, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		slot := findSlot(snapshot, line.RestaurantID, line.CompanyID, line.DeliveryDateMS)
		item := findItem(slot.Items, line.ItemID)

		optional := model.NormalizeLabels(line.OptionalAddons)
		required := model.NormalizeLabels(line.RequiredAddons)
		image := item.Image
		if image == "" {
			image = slot.Logo
		}

		drafts = append(drafts, model.Order{
			ID: uuid.NewString(),
			Customer: model.OrderCustomer{
				ID:        customer.ID,
				FirstName: customer.FirstName,
				LastName:  customer.LastName,
				Email:     customer.Email,
			},
			Restaurant: model.OrderRestaurant{ID: slot.RestaurantID, Name: slot.RestaurantName},
			Company:    model.OrderCompany{ID: company.ID, Name: company.Name, Shift: company.Shift},
			Delivery: model.OrderDelivery{
				DateMS:  model.TruncateMS(line.DeliveryDateMS),
				Address: company.Address,
			},
			Status: model.OrderStatusProcessing,
			Item: model.OrderItem{
				ID:                 item.ID,
				Name:               item.Name,
				Tags:               item.Tags,
				Description:        item.Description,
				Image:              image,
				Quantity:           line.Quantity,
				OptionalAddons:     model.JoinSorted(optional),
				RequiredAddons:     model.JoinSorted(required),
				RemovedIngredients: model.JoinSorted(line.RemovedIngredients),
				Total:              LineTotal(item, optional, required, line.Quantity),
			},
			CreatedAt: now,
		})
	}
	return drafts
}

func shiftLabel(s model.Shift) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[0:1])) + string(s[1:])
}
