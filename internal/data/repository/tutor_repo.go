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

type TutorRepository interface {
	Create(ctx context.Context, tutor *entity.Tutor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tutor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Tutor, error)
	FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Tutor, error)
	UpdateWalletBalance(ctx context.Context, tutorID uuid.UUID, balance float64) error
}

type tutorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTutorRepository(db database.PgxIface, log *zap.Logger) TutorRepository {
	return &tutorRepository{
		db:  db,
		log: log.With(zap.String("repository", "tutor")),
	}
}

const tutorColumns = `id, user_id, headline, wallet_balance, created_at, updated_at`

func scanTutor(row pgx.Row) (*entity.Tutor, error) {
	var tutor entity.Tutor
	err := row.Scan(
		&tutor.ID,
		&tutor.UserID,
		&tutor.Headline,
		&tutor.WalletBalance,
		&tutor.CreatedAt,
		&tutor.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tutor, nil
}

func (r *tutorRepository) Create(ctx context.Context, tutor *entity.Tutor) error {
	query := `
		INSERT INTO tutors (id, user_id, headline, wallet_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		tutor.ID,
		tutor.UserID,
		tutor.Headline,
		tutor.WalletBalance,
		tutor.CreatedAt,
		tutor.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create tutor",
			zap.Error(err),
			zap.String("tutor_id", tutor.ID.String()),
		)
		return fmt.Errorf("create tutor %s: %w", tutor.ID.String(), err)
	}

	return nil
}

func (r *tutorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE id = $1`

	tutor, err := scanTutor(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tutor by ID",
			zap.Error(err),
			zap.String("tutor_id", id.String()),
		)
		return nil, fmt.Errorf("find tutor by ID %s: %w", id.String(), err)
	}

	return tutor, nil
}

func (r *tutorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE user_id = $1`

	tutor, err := scanTutor(r.db.QueryRow(ctx, query, userID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tutor by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find tutor by user ID %s: %w", userID.String(), err)
	}

	return tutor, nil
}

func (r *tutorRepository) FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Tutor, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find tutors by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("find tutors by IDs: %w", err)
	}
	defer rows.Close()

	var tutors []*entity.Tutor
	for rows.Next() {
		tutor, err := scanTutor(rows)
		if err != nil {
			r.log.Error("Failed to scan tutor row", zap.Error(err))
			return nil, fmt.Errorf("scan tutor row: %w", err)
		}
		tutors = append(tutors, tutor)
	}

	return tutors, nil
}

func (r *tutorRepository) UpdateWalletBalance(ctx context.Context, tutorID uuid.UUID, balance float64) error {
	query := `UPDATE tutors SET wallet_balance = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, tutorID, balance)
	if err != nil {
		r.log.Error("Failed to update tutor wallet balance",
			zap.Error(err),
			zap.String("tutor_id", tutorID.String()),
			zap.Float64("balance", balance),
		)
		return fmt.Errorf("update tutor %s wallet balance: %w", tutorID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tutor %s not found", tutorID.String())
	}

	return nil
}
