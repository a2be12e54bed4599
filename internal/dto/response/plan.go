package response

import (
	"time"

	"tutor-booking/internal/data/entity"
)

type PlanResponse struct {
	ID           string    `json:"id"`
	TutorID      string    `json:"tutor_id"`
	PricePerHour float64   `json:"price_per_hour"`
	MeetingURL   *string   `json:"meeting_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func PlanToResponse(plan *entity.BookingPlan) PlanResponse {
	return PlanResponse{
		ID:           plan.ID.String(),
		TutorID:      plan.TutorID.String(),
		PricePerHour: plan.PricePerHour,
		MeetingURL:   plan.MeetingURL,
		CreatedAt:    plan.CreatedAt,
	}
}
