package usecase

import (
	"context"
	"fmt"
	"time"

	"tutor-booking/internal/data/entity"
	"tutor-booking/internal/data/repository"
	"tutor-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	deepLinkBookedSlots = "/booked-slots"
	deepLinkMyBookings  = "/my-bookings"
)

type ReminderService interface {
	// SendTutorRemindersForUpcomingSlots scans paid, not-yet-reminded slots
	// starting inside the configured lead window and notifies both sides of
	// each one. Slots are processed independently: a failure on one slot
	// leaves its reminder flag unset (retried next tick) and never stops the
	// rest of the batch.
	SendTutorRemindersForUpcomingSlots(ctx context.Context) error
}

type reminderService struct {
	repo       *repository.Repository
	notifier   Notifier
	leadWindow time.Duration
	log        *zap.Logger
}

func NewReminderService(repo *repository.Repository, notifier Notifier, config *utils.Config, log *zap.Logger) ReminderService {
	return &reminderService{
		repo:       repo,
		notifier:   notifier,
		leadWindow: time.Duration(config.Reminder.LeadMinutes) * time.Minute,
		log:        log.With(zap.String("service", "reminder")),
	}
}

func (s *reminderService) SendTutorRemindersForUpcomingSlots(ctx context.Context) error {
	now := time.Now()

	slots, err := s.repo.Slot.FindDueForReminder(ctx, now, now.Add(s.leadWindow))
	if err != nil {
		return fmt.Errorf("send reminders: %w", err)
	}

	if len(slots) == 0 {
		return nil
	}

	sent := 0
	for _, slot := range slots {
		if s.remindSlot(ctx, slot) {
			sent++
		}
	}

	s.log.Info("Reminder scan finished",
		zap.Int("due", len(slots)),
		zap.Int("sent", sent),
	)

	return nil
}

// remindSlot notifies the tutor and the learner of one upcoming slot and
// marks the reminder sent only when both notifications went out. Any failure
// is contained to this slot.
func (s *reminderService) remindSlot(ctx context.Context, slot *entity.BookingPlanSlot) bool {
	tutor, err := s.repo.Tutor.FindByID(ctx, slot.TutorID)
	if err != nil {
		s.log.Warn("Reminder skipped, tutor lookup failed",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return false
	}
	if tutor == nil || tutor.UserID == nil {
		// No addressable tutor; leave the flag unset without noise.
		return false
	}

	body := fmt.Sprintf("Your session starts at %s.", slot.StartTime.Format("15:04, Jan 2"))

	if err := s.notifier.Send(ctx, *tutor.UserID,
		"Upcoming booking",
		body,
		entity.NotificationKindBookingReminder,
		deepLinkBookedSlots,
	); err != nil {
		s.log.Warn("Reminder skipped, tutor notification failed",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return false
	}

	if err := s.notifier.Send(ctx, slot.LearnerUserID,
		"Upcoming booking",
		body,
		entity.NotificationKindBookingReminder,
		deepLinkMyBookings,
	); err != nil {
		s.log.Warn("Reminder skipped, learner notification failed",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return false
	}

	slot.ReminderSent = true
	slot.UpdatedAt = time.Now()

	if err := s.repo.Slot.Update(ctx, slot); err != nil {
		// Both sides were notified but the flag did not stick; the next tick
		// re-sends rather than losing the reminder.
		s.log.Error("Failed to mark reminder sent",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return false
	}

	return true
}
