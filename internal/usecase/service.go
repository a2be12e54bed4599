package usecase

import (
	"tutor-booking/internal/data/repository"
	"tutor-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Attendance   AttendanceService
	Reminder     ReminderService
	SlotQuery    SlotQueryService
	Plan         PlanService
	Notification NotificationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	notification := NewNotificationService(repo, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Attendance:   NewAttendanceService(repo, notification, log),
		Reminder:     NewReminderService(repo, notification, config, log),
		SlotQuery:    NewSlotQueryService(repo, log),
		Plan:         NewPlanService(repo, log),
		Notification: notification,
	}
}
