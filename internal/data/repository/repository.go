package repository

import (
	"tutor-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Tutor        TutorRepository
	Plan         BookingPlanRepository
	Slot         BookingPlanSlotRepository
	Payment      PaymentRepository
	Refund       RefundRequestRepository
	Notification NotificationRepository
	Wallet       WalletRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Tutor:        NewTutorRepository(db, log),
		Plan:         NewBookingPlanRepository(db, log),
		Slot:         NewBookingPlanSlotRepository(db, log),
		Payment:      NewPaymentRepository(db, log),
		Refund:       NewRefundRequestRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		Wallet:       NewWalletRepository(db, log),
	}
}
