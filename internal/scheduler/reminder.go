package scheduler

import (
	"context"
	"time"

	"tutor-booking/internal/usecase"
	"tutor-booking/pkg/utils"

	"go.uber.org/zap"
)

// ReminderWorker drives the reminder scan on a fixed tick. Each tick is an
// independent pass over due slots; a failing pass is logged and the next tick
// retries, since unsent reminders keep their flag unset.
type ReminderWorker struct {
	service  usecase.ReminderService
	interval time.Duration
	log      *zap.Logger
}

func NewReminderWorker(service usecase.ReminderService, config *utils.Config, log *zap.Logger) *ReminderWorker {
	return &ReminderWorker{
		service:  service,
		interval: time.Duration(config.Reminder.IntervalMinutes) * time.Minute,
		log:      log.With(zap.String("worker", "reminder")),
	}
}

// Run blocks until ctx is cancelled. One scan fires immediately so a restart
// does not wait a full interval to catch up on due reminders.
func (w *ReminderWorker) Run(ctx context.Context) {
	w.log.Info("Reminder worker started", zap.Duration("interval", w.interval))

	w.scan(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *ReminderWorker) scan(ctx context.Context) {
	if err := w.service.SendTutorRemindersForUpcomingSlots(ctx); err != nil {
		w.log.Error("Reminder scan failed", zap.Error(err))
	}
}
