package repository

import (
	"context"
	"fmt"

	"tutor-booking/internal/data/entity"
	"tutor-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RefundRequestRepository interface {
	Create(ctx context.Context, refund *entity.RefundRequest) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefundRequest, error)
}

type refundRequestRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRefundRequestRepository(db database.PgxIface, log *zap.Logger) RefundRequestRepository {
	return &refundRequestRepository{
		db:  db,
		log: log.With(zap.String("repository", "refund_request")),
	}
}

func (r *refundRequestRepository) Create(ctx context.Context, refund *entity.RefundRequest) error {
	query := `
		INSERT INTO refund_requests (id, plan_id, slot_id, user_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		refund.ID,
		refund.PlanID,
		refund.SlotID,
		refund.UserID,
		refund.Amount,
		refund.Status,
		refund.CreatedAt,
		refund.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create refund request",
			zap.Error(err),
			zap.String("refund_id", refund.ID.String()),
			zap.String("slot_id", refund.SlotID.String()),
		)
		return fmt.Errorf("create refund request %s: %w", refund.ID.String(), err)
	}

	return nil
}

func (r *refundRequestRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefundRequest, error) {
	query := `
		SELECT id, plan_id, slot_id, user_id, amount, status, created_at, updated_at
		FROM refund_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find refund requests by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find refund requests by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var refunds []*entity.RefundRequest
	for rows.Next() {
		var refund entity.RefundRequest
		err := rows.Scan(
			&refund.ID,
			&refund.PlanID,
			&refund.SlotID,
			&refund.UserID,
			&refund.Amount,
			&refund.Status,
			&refund.CreatedAt,
			&refund.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan refund request row", zap.Error(err))
			return nil, fmt.Errorf("scan refund request row: %w", err)
		}
		refunds = append(refunds, &refund)
	}

	return refunds, nil
}
