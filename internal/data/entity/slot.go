package entity

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusLocked    SlotStatus = "locked"
	SlotStatusPaid      SlotStatus = "paid"
)

// BookingPlanSlot is a booked time window on a plan. Join flags and evidence
// may only be set while the slot is paid; the reminder flag is never reset.
type BookingPlanSlot struct {
	Base
	LearnerUserID   uuid.UUID  `db:"learner_user_id"`
	TutorID         uuid.UUID  `db:"tutor_id"`
	PlanID          *uuid.UUID `db:"plan_id"`
	PaymentID       *uuid.UUID `db:"payment_id"`
	Status          SlotStatus `db:"status"`
	StartTime       time.Time  `db:"start_time"`
	EndTime         time.Time  `db:"end_time"`
	LearnerJoin     bool       `db:"learner_join"`
	LearnerEvidence *string    `db:"learner_evidence"`
	TutorJoin       bool       `db:"tutor_join"`
	TutorEvidence   *string    `db:"tutor_evidence"`
	ReminderSent    bool       `db:"reminder_sent"`
}

// Duration is the booked session length, used for reminder scheduling and
// refund proration.
func (s *BookingPlanSlot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// FullyConfirmed reports whether both sides confirmed attendance on a paid
// slot. Wallet settlement requires this for every slot of a payment.
func (s *BookingPlanSlot) FullyConfirmed() bool {
	return s.Status == SlotStatusPaid && s.TutorJoin && s.LearnerJoin
}
