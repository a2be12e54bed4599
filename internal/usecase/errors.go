package usecase

import "errors"

// Failure kinds surfaced by the services. Handlers map these to HTTP statuses
// with errors.Is; services wrap them with context via fmt.Errorf("...: %w").
var (
	ErrSlotNotFound     = errors.New("slot not found")
	ErrTutorNotFound    = errors.New("tutor not found")
	ErrPlanNotFound     = errors.New("booking plan not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidSlotState = errors.New("slot is not in paid status")
)
