package wire

import (
	"tutor-booking/internal/adaptor"
	"tutor-booking/internal/data/repository"
	"tutor-booking/pkg/middleware"
	"tutor-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAttendance(
	r chi.Router,
	attendanceHandler *adaptor.AttendanceHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// POST /api/slots/{id}/learner-join - Learner confirms attendance
		r.Post("/api/slots/{id}/learner-join", attendanceHandler.LearnerJoin)

		// POST /api/slots/{id}/tutor-join - Tutor confirms attendance
		r.Post("/api/slots/{id}/tutor-join", attendanceHandler.TutorJoin)

		// POST /api/slots/{id}/complain - Learner files a dispute with evidence
		r.Post("/api/slots/{id}/complain", attendanceHandler.Complain)

		// GET /api/my-refunds - The caller's refund requests
		r.Get("/api/my-refunds", attendanceHandler.GetMyRefunds)
	})
}
