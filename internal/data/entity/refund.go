package entity

import (
	"github.com/google/uuid"
)

type RefundStatus string

const (
	RefundStatusPending  RefundStatus = "pending"
	RefundStatusApproved RefundStatus = "approved"
	RefundStatusRejected RefundStatus = "rejected"
)

// RefundRequest is created by a learner complaint and processed by the
// refund subsystem downstream. Amount is prorated from the slot duration.
type RefundRequest struct {
	Base
	PlanID uuid.UUID    `db:"plan_id"`
	SlotID uuid.UUID    `db:"slot_id"`
	UserID uuid.UUID    `db:"user_id"`
	Amount float64      `db:"amount"`
	Status RefundStatus `db:"status"`
}
