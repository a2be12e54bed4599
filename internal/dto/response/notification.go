package response

import (
	"time"

	"tutor-booking/internal/data/entity"
)

type NotificationResponse struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Body      string                  `json:"body"`
	Kind      entity.NotificationKind `json:"kind"`
	DeepLink  string                  `json:"deep_link"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func NotificationToResponse(notification *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID.String(),
		Title:     notification.Title,
		Body:      notification.Body,
		Kind:      notification.Kind,
		DeepLink:  notification.DeepLink,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
}
