package adaptor

import (
	"encoding/json"
	"net/http"

	"tutor-booking/internal/dto/request"
	"tutor-booking/internal/usecase"
	"tutor-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AttendanceHandler struct {
	service usecase.AttendanceService
	log     *zap.Logger
}

func NewAttendanceHandler(service usecase.AttendanceService, log *zap.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		log:     log.With(zap.String("handler", "attendance")),
	}
}

// LearnerJoin handles POST /api/slots/{id}/learner-join (protected)
func (h *AttendanceHandler) LearnerJoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	var req request.ConfirmJoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.LearnerConfirmJoin(r.Context(), userID, slotID, &req); err != nil {
		handleServiceError(h.log, w, err, "learner join")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// TutorJoin handles POST /api/slots/{id}/tutor-join (protected)
func (h *AttendanceHandler) TutorJoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	var req request.ConfirmJoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.TutorConfirmJoin(r.Context(), userID, slotID, &req); err != nil {
		handleServiceError(h.log, w, err, "tutor join")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// Complain handles POST /api/slots/{id}/complain (protected)
func (h *AttendanceHandler) Complain(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	slotID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid slot ID", nil)
		return
	}

	var req request.ComplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	refund, err := h.service.LearnerComplain(r.Context(), userID, slotID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "learner complain")
		return
	}

	utils.ResponseCreated(w, "success", refund)
}

// GetMyRefunds handles GET /api/my-refunds (protected)
func (h *AttendanceHandler) GetMyRefunds(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	refunds, err := h.service.GetUserRefunds(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get my refunds")
		return
	}

	utils.ResponseSuccess(w, "success", refunds)
}
