package response

import (
	"time"

	"tutor-booking/internal/data/entity"
)

// SlotResponse is the learner/tutor facing projection of a booking slot.
// MeetingURL is only disclosed once the slot is paid; TutorFullName degrades
// to "" when the tutor has no resolvable linked user.
type SlotResponse struct {
	ID            string            `json:"id"`
	LearnerUserID string            `json:"learner_user_id"`
	TutorID       string            `json:"tutor_id"`
	PlanID        *string           `json:"plan_id,omitempty"`
	Status        entity.SlotStatus `json:"status"`
	StartTime     time.Time         `json:"start_time"`
	EndTime       time.Time         `json:"end_time"`
	LearnerJoin   bool              `json:"learner_join"`
	TutorJoin     bool              `json:"tutor_join"`
	MeetingURL    *string           `json:"meeting_url"`
	TutorFullName string            `json:"tutor_full_name"`
	CreatedAt     time.Time         `json:"created_at"`
}

func SlotToResponse(slot *entity.BookingPlanSlot, meetingURL *string, tutorFullName string) SlotResponse {
	var planID *string
	if slot.PlanID != nil {
		id := slot.PlanID.String()
		planID = &id
	}

	return SlotResponse{
		ID:            slot.ID.String(),
		LearnerUserID: slot.LearnerUserID.String(),
		TutorID:       slot.TutorID.String(),
		PlanID:        planID,
		Status:        slot.Status,
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		LearnerJoin:   slot.LearnerJoin,
		TutorJoin:     slot.TutorJoin,
		MeetingURL:    meetingURL,
		TutorFullName: tutorFullName,
		CreatedAt:     slot.CreatedAt,
	}
}
