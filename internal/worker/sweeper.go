package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/feasthq/mealdesk/internal/domain/model"
	"github.com/feasthq/mealdesk/internal/pkg/clock"
)

// MarketplaceFacade exposes the subset of application functionality required
// by the background sweeper.
type MarketplaceFacade interface {
	SweepCapacity(ctx context.Context) error
	SendOrderReminders(ctx context.Context) error
}

// Reminders go out once a week while next week's schedules are still open;
// ordering closes over the weekend.
const (
	reminderWeekday = time.Thursday
	reminderHourUTC = 10
)

// Sweeper periodically enforces schedule capacity and, once a week, sends
// order reminder emails. Both tasks are best-effort: failures are logged and
// retried on a later tick.
type Sweeper struct {
	facade   MarketplaceFacade
	interval time.Duration
	clock    clock.Clock
	logger   *slog.Logger

	// lastReminder keeps one reminder batch per day across ticks; touched
	// only from the run goroutine.
	lastReminder int64

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs the background sweeper.
func NewSweeper(facade MarketplaceFacade, interval time.Duration, c clock.Clock, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		facade:   facade,
		interval: interval,
		clock:    c,
		logger:   logger,
	}
}

// Start launches background sweeping.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the sweep loop to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	if err := s.facade.SweepCapacity(ctx); err != nil {
		s.logger.Error("capacity sweep failed", slog.String("error", err.Error()))
	}

	now := s.clock.Now().UTC()
	if now.Weekday() != reminderWeekday || now.Hour() != reminderHourUTC {
		return
	}
	today := model.DateToMS(now)
	if s.lastReminder == today {
		return
	}
	s.lastReminder = today

	if err := s.facade.SendOrderReminders(ctx); err != nil {
		s.logger.Error("order reminders failed", slog.String("error", err.Error()))
	}
}
