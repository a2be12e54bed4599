package wire

import (
	"tutor-booking/internal/adaptor"
	"tutor-booking/internal/data/repository"
	"tutor-booking/pkg/middleware"
	"tutor-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePlan(
	r chi.Router,
	planHandler *adaptor.PlanHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/plans - Create a booking plan (tutor)
		r.Post("/api/plans", planHandler.CreatePlan)

		// GET /api/plans - List the tutor's own plans
		r.Get("/api/plans", planHandler.GetMyPlans)

		// PUT /api/plans/{id}/meeting-url - Attach the meeting URL to a plan
		r.Put("/api/plans/{id}/meeting-url", planHandler.SetMeetingURL)
	})
}
