package entity

import (
	"github.com/google/uuid"
)

// BookingPlan is a tutor's bookable one-on-one offering. Immutable once
// created except for the meeting URL, which the tutor may set post-hoc.
type BookingPlan struct {
	Base
	TutorID      uuid.UUID `db:"tutor_id"`
	PricePerHour float64   `db:"price_per_hour"`
	MeetingURL   *string   `db:"meeting_url"`
}
