package usecase

import (
	"context"
	"fmt"
	"time"

	"tutor-booking/internal/data/entity"
	"tutor-booking/internal/data/repository"
	"tutor-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier delivers a user-facing message. Delivery may fail; callers decide
// whether the failure is fatal (it never is for the attendance and reminder
// flows, which treat notifications as advisory).
type Notifier interface {
	Send(ctx context.Context, userID uuid.UUID, title, body string, kind entity.NotificationKind, deepLink string) error
}

type NotificationService interface {
	Notifier
	GetUserNotifications(ctx context.Context, userID uuid.UUID) ([]response.NotificationResponse, error)
}

type notificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNotificationService(repo *repository.Repository, log *zap.Logger) NotificationService {
	return &notificationService{
		repo: repo,
		log:  log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) Send(ctx context.Context, userID uuid.UUID, title, body string, kind entity.NotificationKind, deepLink string) error {
	notification := &entity.Notification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:   userID,
		Title:    title,
		Body:     body,
		Kind:     kind,
		DeepLink: deepLink,
	}

	if err := s.repo.Notification.Create(ctx, notification); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}

	s.log.Debug("Notification stored",
		zap.String("user_id", userID.String()),
		zap.String("kind", string(kind)),
		zap.String("deep_link", deepLink),
	)

	return nil
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID) ([]response.NotificationResponse, error) {
	notifications, err := s.repo.Notification.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user notifications",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get user notifications: %w", err)
	}

	responses := make([]response.NotificationResponse, len(notifications))
	for i, notification := range notifications {
		responses[i] = response.NotificationToResponse(notification)
	}

	return responses, nil
}
