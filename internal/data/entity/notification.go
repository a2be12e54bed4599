package entity

import (
	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationKindBookingReminder NotificationKind = "booking_reminder"
	NotificationKindRefundAvailable NotificationKind = "refund_available"
)

type Notification struct {
	BaseSimple
	UserID   uuid.UUID        `db:"user_id"`
	Title    string           `db:"title"`
	Body     string           `db:"body"`
	Kind     NotificationKind `db:"kind"`
	DeepLink string           `db:"deep_link"`
	IsRead   bool             `db:"is_read"`
}
