package repository

import (
	"context"
	"fmt"

	"tutor-booking/internal/data/entity"
	"tutor-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingPlanRepository interface {
	Create(ctx context.Context, plan *entity.BookingPlan) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingPlan, error)
	FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.BookingPlan, error)
	FindByTutorID(ctx context.Context, tutorID uuid.UUID) ([]*entity.BookingPlan, error)
	UpdateMeetingURL(ctx context.Context, planID uuid.UUID, meetingURL string) error
}

type bookingPlanRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingPlanRepository(db database.PgxIface, log *zap.Logger) BookingPlanRepository {
	return &bookingPlanRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_plan")),
	}
}

const planColumns = `id, tutor_id, price_per_hour, meeting_url, created_at, updated_at`

func scanPlan(row pgx.Row) (*entity.BookingPlan, error) {
	var plan entity.BookingPlan
	err := row.Scan(
		&plan.ID,
		&plan.TutorID,
		&plan.PricePerHour,
		&plan.MeetingURL,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *bookingPlanRepository) Create(ctx context.Context, plan *entity.BookingPlan) error {
	query := `
		INSERT INTO booking_plans (id, tutor_id, price_per_hour, meeting_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		plan.ID,
		plan.TutorID,
		plan.PricePerHour,
		plan.MeetingURL,
		plan.CreatedAt,
		plan.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking plan",
			zap.Error(err),
			zap.String("plan_id", plan.ID.String()),
		)
		return fmt.Errorf("create booking plan %s: %w", plan.ID.String(), err)
	}

	return nil
}

func (r *bookingPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingPlan, error) {
	query := `SELECT ` + planColumns + ` FROM booking_plans WHERE id = $1`

	plan, err := scanPlan(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking plan by ID",
			zap.Error(err),
			zap.String("plan_id", id.String()),
		)
		return nil, fmt.Errorf("find booking plan by ID %s: %w", id.String(), err)
	}

	return plan, nil
}

func (r *bookingPlanRepository) FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.BookingPlan, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + planColumns + ` FROM booking_plans WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find booking plans by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("find booking plans by IDs: %w", err)
	}
	defer rows.Close()

	var plans []*entity.BookingPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			r.log.Error("Failed to scan booking plan row", zap.Error(err))
			return nil, fmt.Errorf("scan booking plan row: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

func (r *bookingPlanRepository) FindByTutorID(ctx context.Context, tutorID uuid.UUID) ([]*entity.BookingPlan, error) {
	query := `SELECT ` + planColumns + ` FROM booking_plans WHERE tutor_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, tutorID)
	if err != nil {
		r.log.Error("Failed to find booking plans by tutor ID",
			zap.Error(err),
			zap.String("tutor_id", tutorID.String()),
		)
		return nil, fmt.Errorf("find booking plans by tutor ID %s: %w", tutorID.String(), err)
	}
	defer rows.Close()

	var plans []*entity.BookingPlan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			r.log.Error("Failed to scan booking plan row", zap.Error(err))
			return nil, fmt.Errorf("scan booking plan row: %w", err)
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

func (r *bookingPlanRepository) UpdateMeetingURL(ctx context.Context, planID uuid.UUID, meetingURL string) error {
	query := `UPDATE booking_plans SET meeting_url = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, planID, meetingURL)
	if err != nil {
		r.log.Error("Failed to update booking plan meeting URL",
			zap.Error(err),
			zap.String("plan_id", planID.String()),
		)
		return fmt.Errorf("update booking plan %s meeting URL: %w", planID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking plan %s not found", planID.String())
	}

	return nil
}
