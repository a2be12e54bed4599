package adaptor

import (
	"net/http"

	"tutor-booking/internal/usecase"
	"tutor-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotHandler struct {
	service usecase.SlotQueryService
	log     *zap.Logger
}

func NewSlotHandler(service usecase.SlotQueryService, log *zap.Logger) *SlotHandler {
	return &SlotHandler{
		service: service,
		log:     log.With(zap.String("handler", "slot")),
	}
}

// GetMyBookings handles GET /api/my-bookings (protected, learner view)
func (h *SlotHandler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slots, err := h.service.GetSlotsForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get my bookings")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetBookedSlots handles GET /api/booked-slots (protected, tutor view)
func (h *SlotHandler) GetBookedSlots(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slots, err := h.service.GetSlotsForTutor(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get booked slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetTutorPaidSlots handles GET /api/admin/tutors/{id}/paid-slots (admin only)
func (h *SlotHandler) GetTutorPaidSlots(w http.ResponseWriter, r *http.Request) {
	tutorID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid tutor ID", nil)
		return
	}

	slots, err := h.service.GetPaidSlotsByTutor(r.Context(), tutorID)
	if err != nil {
		handleServiceError(h.log, w, err, "get tutor paid slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}
