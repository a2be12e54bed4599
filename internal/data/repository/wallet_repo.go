package repository

import (
	"context"
	"fmt"

	"tutor-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WalletRepository is the settlement ledger. RecomputeBalance derives the
// tutor's authoritative balance from source truth (every fully confirmed,
// paid booking slot), so repeated recomputation always converges.
type WalletRepository interface {
	RecomputeBalance(ctx context.Context, tutorID uuid.UUID) (float64, error)
}

type walletRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWalletRepository(db database.PgxIface, log *zap.Logger) WalletRepository {
	return &walletRepository{
		db:  db,
		log: log.With(zap.String("repository", "wallet")),
	}
}

func (r *walletRepository) RecomputeBalance(ctx context.Context, tutorID uuid.UUID) (float64, error) {
	// Earnings per slot: plan hourly price prorated by the booked duration.
	query := `
		SELECT COALESCE(ROUND(SUM(
			p.price_per_hour * EXTRACT(EPOCH FROM (s.end_time - s.start_time)) / 3600.0
		)::numeric, 2), 0)
		FROM booking_plan_slots s
		JOIN booking_plans p ON p.id = s.plan_id
		JOIN payments pay ON pay.id = s.payment_id
		WHERE s.tutor_id = $1
		  AND s.status = 'paid'
		  AND s.tutor_join = true
		  AND s.learner_join = true
		  AND pay.type = 'booking'
	`

	var balance float64
	err := r.db.QueryRow(ctx, query, tutorID).Scan(&balance)
	if err != nil {
		r.log.Error("Failed to recompute wallet balance",
			zap.Error(err),
			zap.String("tutor_id", tutorID.String()),
		)
		return 0, fmt.Errorf("recompute wallet balance for tutor %s: %w", tutorID.String(), err)
	}

	return balance, nil
}
