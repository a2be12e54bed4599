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

type PlanHandler struct {
	service usecase.PlanService
	log     *zap.Logger
}

func NewPlanHandler(service usecase.PlanService, log *zap.Logger) *PlanHandler {
	return &PlanHandler{
		service: service,
		log:     log.With(zap.String("handler", "plan")),
	}
}

// CreatePlan handles POST /api/plans (protected, tutor)
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	plan, err := h.service.CreatePlan(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create plan")
		return
	}

	utils.ResponseCreated(w, "success", plan)
}

// SetMeetingURL handles PUT /api/plans/{id}/meeting-url (protected, tutor)
func (h *PlanHandler) SetMeetingURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid plan ID", nil)
		return
	}

	var req request.SetMeetingURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.SetMeetingURL(r.Context(), userID, planID, &req); err != nil {
		handleServiceError(h.log, w, err, "set meeting URL")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetMyPlans handles GET /api/plans (protected, tutor)
func (h *PlanHandler) GetMyPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	plans, err := h.service.GetTutorPlans(r.Context(), userID)
	if err != nil {
		handleServiceError(h.log, w, err, "get tutor plans")
		return
	}

	utils.ResponseSuccess(w, "success", plans)
}
