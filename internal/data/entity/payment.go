package entity

import (
	"github.com/google/uuid"
)

type PaymentType string

const (
	PaymentTypeCourse  PaymentType = "course"
	PaymentTypeBooking PaymentType = "booking"
)

// Payment is owned by the checkout flow; this subsystem only reads it to
// decide whether a slot participates in wallet settlement.
type Payment struct {
	Base
	Type    PaymentType `db:"type"`
	TutorID uuid.UUID   `db:"tutor_id"`
	Amount  float64     `db:"amount"`
}
