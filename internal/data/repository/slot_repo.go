package repository

import (
	"context"
	"fmt"
	"time"

	"tutor-booking/internal/data/entity"
	"tutor-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingPlanSlotRepository interface {
	Create(ctx context.Context, slot *entity.BookingPlanSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingPlanSlot, error)
	FindAllByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*entity.BookingPlanSlot, error)
	FindByLearnerUserID(ctx context.Context, learnerUserID uuid.UUID) ([]*entity.BookingPlanSlot, error)
	FindByTutorID(ctx context.Context, tutorID uuid.UUID) ([]*entity.BookingPlanSlot, error)
	FindByTutorIDAndStatus(ctx context.Context, tutorID uuid.UUID, status entity.SlotStatus) ([]*entity.BookingPlanSlot, error)
	FindDueForReminder(ctx context.Context, from, until time.Time) ([]*entity.BookingPlanSlot, error)
	Update(ctx context.Context, slot *entity.BookingPlanSlot) error
}

type bookingPlanSlotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingPlanSlotRepository(db database.PgxIface, log *zap.Logger) BookingPlanSlotRepository {
	return &bookingPlanSlotRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_plan_slot")),
	}
}

const slotColumns = `id, learner_user_id, tutor_id, plan_id, payment_id, status, start_time, end_time,
	       learner_join, learner_evidence, tutor_join, tutor_evidence, reminder_sent, created_at, updated_at`

func scanSlot(row pgx.Row) (*entity.BookingPlanSlot, error) {
	var slot entity.BookingPlanSlot
	err := row.Scan(
		&slot.ID,
		&slot.LearnerUserID,
		&slot.TutorID,
		&slot.PlanID,
		&slot.PaymentID,
		&slot.Status,
		&slot.StartTime,
		&slot.EndTime,
		&slot.LearnerJoin,
		&slot.LearnerEvidence,
		&slot.TutorJoin,
		&slot.TutorEvidence,
		&slot.ReminderSent,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *bookingPlanSlotRepository) Create(ctx context.Context, slot *entity.BookingPlanSlot) error {
	query := `
		INSERT INTO booking_plan_slots (id, learner_user_id, tutor_id, plan_id, payment_id, status,
		                                start_time, end_time, learner_join, learner_evidence,
		                                tutor_join, tutor_evidence, reminder_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.LearnerUserID,
		slot.TutorID,
		slot.PlanID,
		slot.PaymentID,
		slot.Status,
		slot.StartTime,
		slot.EndTime,
		slot.LearnerJoin,
		slot.LearnerEvidence,
		slot.TutorJoin,
		slot.TutorEvidence,
		slot.ReminderSent,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create slot",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return fmt.Errorf("create slot %s: %w", slot.ID.String(), err)
	}

	return nil
}

func (r *bookingPlanSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingPlanSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM booking_plan_slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *bookingPlanSlotRepository) FindAllByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]*entity.BookingPlanSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM booking_plan_slots WHERE payment_id = $1 ORDER BY start_time`

	return r.findMany(ctx, query, "payment_id", paymentID)
}

func (r *bookingPlanSlotRepository) FindByLearnerUserID(ctx context.Context, learnerUserID uuid.UUID) ([]*entity.BookingPlanSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM booking_plan_slots WHERE learner_user_id = $1 ORDER BY start_time DESC`

	return r.findMany(ctx, query, "learner_user_id", learnerUserID)
}

func (r *bookingPlanSlotRepository) FindByTutorID(ctx context.Context, tutorID uuid.UUID) ([]*entity.BookingPlanSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM booking_plan_slots WHERE tutor_id = $1 ORDER BY start_time DESC`

	return r.findMany(ctx, query, "tutor_id", tutorID)
}

func (r *bookingPlanSlotRepository) FindByTutorIDAndStatus(ctx context.Context, tutorID uuid.UUID, status entity.SlotStatus) ([]*entity.BookingPlanSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM booking_plan_slots WHERE tutor_id = $1 AND status = $2 ORDER BY start_time DESC`

	rows, err := r.db.Query(ctx, query, tutorID, status)
	if err != nil {
		r.log.Error("Failed to find slots by tutor ID and status",
			zap.Error(err),
			zap.String("tutor_id", tutorID.String()),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("find slots by tutor ID %s and status %s: %w", tutorID.String(), string(status), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// FindDueForReminder returns paid slots starting inside [from, until) whose
// reminder has not been sent yet. Slots already reminded never reappear.
func (r *bookingPlanSlotRepository) FindDueForReminder(ctx context.Context, from, until time.Time) ([]*entity.BookingPlanSlot, error) {
	query := `SELECT ` + slotColumns + `
		FROM booking_plan_slots
		WHERE status = $1 AND reminder_sent = false AND start_time >= $2 AND start_time < $3
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, entity.SlotStatusPaid, from, until)
	if err != nil {
		r.log.Error("Failed to find slots due for reminder",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("until", until),
		)
		return nil, fmt.Errorf("find slots due for reminder: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *bookingPlanSlotRepository) Update(ctx context.Context, slot *entity.BookingPlanSlot) error {
	query := `
		UPDATE booking_plan_slots
		SET status = $2, payment_id = $3, learner_join = $4, learner_evidence = $5,
		    tutor_join = $6, tutor_evidence = $7, reminder_sent = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.Status,
		slot.PaymentID,
		slot.LearnerJoin,
		slot.LearnerEvidence,
		slot.TutorJoin,
		slot.TutorEvidence,
		slot.ReminderSent,
		slot.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update slot",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
		)
		return fmt.Errorf("update slot %s: %w", slot.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot %s not found", slot.ID.String())
	}

	return nil
}

func (r *bookingPlanSlotRepository) findMany(ctx context.Context, query, field string, id uuid.UUID) ([]*entity.BookingPlanSlot, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to find slots",
			zap.Error(err),
			zap.String(field, id.String()),
		)
		return nil, fmt.Errorf("find slots by %s %s: %w", field, id.String(), err)
	}
	defer rows.Close()

	return r.collect(rows)
}

func (r *bookingPlanSlotRepository) collect(rows pgx.Rows) ([]*entity.BookingPlanSlot, error) {
	var slots []*entity.BookingPlanSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan slot row", zap.Error(err))
			return nil, fmt.Errorf("scan slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}
