package response

import (
	"time"

	"tutor-booking/internal/data/entity"
)

type RefundResponse struct {
	ID        string              `json:"id"`
	PlanID    string              `json:"plan_id"`
	SlotID    string              `json:"slot_id"`
	UserID    string              `json:"user_id"`
	Amount    float64             `json:"amount"`
	Status    entity.RefundStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
}

func RefundToResponse(refund *entity.RefundRequest) RefundResponse {
	return RefundResponse{
		ID:        refund.ID.String(),
		PlanID:    refund.PlanID.String(),
		SlotID:    refund.SlotID.String(),
		UserID:    refund.UserID.String(),
		Amount:    refund.Amount,
		Status:    refund.Status,
		CreatedAt: refund.CreatedAt,
	}
}
