package wire

import (
	"tutor-booking/internal/adaptor"
	"tutor-booking/internal/data/repository"
	"tutor-booking/pkg/middleware"
	"tutor-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireSlot(
	r chi.Router,
	slotHandler *adaptor.SlotHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/my-bookings - Learner's slot list with gated meeting URLs
		r.Get("/api/my-bookings", slotHandler.GetMyBookings)

		// GET /api/booked-slots - Tutor's slot list across all plans
		r.Get("/api/booked-slots", slotHandler.GetBookedSlots)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/tutors", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/tutors/{id}/paid-slots - Paid slots of any tutor
		r.Get("/{id}/paid-slots", slotHandler.GetTutorPaidSlots)
	})
}
