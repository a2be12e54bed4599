package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"tutor-booking/internal/usecase"
	"tutor-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Attendance   *AttendanceHandler
	Slot         *SlotHandler
	Plan         *PlanHandler
	Notification *NotificationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Attendance:   NewAttendanceHandler(service.Attendance, log),
		Slot:         NewSlotHandler(service.SlotQuery, log),
		Plan:         NewPlanHandler(service.Plan, log),
		Notification: NewNotificationHandler(service.Notification, log),
	}
}

// handleServiceError maps service failure kinds to HTTP statuses. Services
// wrap the sentinel errors with context, so the mapping goes through
// errors.Is rather than message matching.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrSlotNotFound),
		errors.Is(err, usecase.ErrTutorNotFound),
		errors.Is(err, usecase.ErrPlanNotFound),
		errors.Is(err, usecase.ErrPaymentNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidSlotState):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
