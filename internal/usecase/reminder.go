package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/feasthq/mealdesk/internal/adapter/mailer"
	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/domain/repository"
	"github.com/feasthq/mealdesk/internal/pkg/clock"
)

// ReminderUseCase nudges subscribed customers who have not ordered for next
// week while their company still has an open schedule.
type ReminderUseCase struct {
	customers   repository.CustomerRepository
	restaurants repository.RestaurantRepository
	orders      repository.OrderRepository
	mail        mailer.Mailer
	clock       clock.Clock
	logger      *slog.Logger
}

// NewReminderUseCase constructs ReminderUseCase.
func NewReminderUseCase(
	customers repository.CustomerRepository,
	restaurants repository.RestaurantRepository,
	orders repository.OrderRepository,
	mail mailer.Mailer,
	c clock.Clock,
	logger *slog.Logger,
) *ReminderUseCase {
	return &ReminderUseCase{
		customers:   customers,
		restaurants: restaurants,
		orders:      orders,
		mail:        mail,
		clock:       c,
		logger:      logger,
	}
}

// SendOrderReminders emails every opted-in customer whose active company has
// an ACTIVE upcoming schedule and who holds no order delivering next week.
// Send failures are logged per customer and never abort the sweep.
func (r *ReminderUseCase) SendOrderReminders(ctx context.Context) error {
	now := r.clock.Now()
	todayMS := model.DateToMS(now)
	nextMondayMS := weekOffsetMS(now, 8)
	nextFridayMS := weekOffsetMS(now, 12)
	weekEndMS := weekOffsetMS(now, 14)

	subscribers, err := r.customers.ListReminderSubscribers(ctx)
	if err != nil {
		return err
	}
	scheduled, err := r.restaurants.ListScheduledBetween(ctx, todayMS, nextFridayMS)
	if err != nil {
		return err
	}
	alreadyOrdered, err := r.orders.CustomerIDsWithDeliveriesBetween(ctx, nextMondayMS, weekEndMS)
	if err != nil {
		return err
	}

	openCompanies := make(map[string]bool)
	for i := range scheduled {
		for _, s := range scheduled[i].Schedules {
			if s.Status == model.ScheduleStatusActive && s.DateMS >= todayMS {
				openCompanies[s.CompanyID] = true
			}
		}
	}
	ordered := make(map[string]bool, len(alreadyOrdered))
	for _, id := range alreadyOrdered {
		ordered[id] = true
	}

	var sent int
	for i := range subscribers {
		c := &subscribers[i]
		if ordered[c.ID] {
			continue
		}
		company, err := ActiveMembership(c.Companies)
		if err != nil || !openCompanies[company.ID] {
			continue
		}
		if err := r.mail.Send(ctx, mailer.OrderReminder(c.Email)); err != nil {
			r.logger.Error("order reminder failed",
				slog.String("customer_id", c.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		sent++
	}

	r.logger.Info("order reminders sent", slog.Int("count", sent))
	return nil
}

// weekOffsetMS returns UTC midnight of the day offset from the most recent
// Sunday. Offset 8 is next week's Monday, 14 the Sunday closing that week.
func weekOffsetMS(now time.Time, offset int) int64 {
	u := now.UTC()
	sunday := u.AddDate(0, 0, -int(u.Weekday()))
	return model.DateToMS(sunday.AddDate(0, 0, offset))
}
