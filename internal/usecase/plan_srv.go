package usecase

import (
	"context"
	"fmt"
	"time"

	"tutor-booking/internal/data/entity"
	"tutor-booking/internal/data/repository"
	"tutor-booking/internal/dto/request"
	"tutor-booking/internal/dto/response"
	"tutor-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PlanService interface {
	CreatePlan(ctx context.Context, tutorUserID uuid.UUID, req *request.CreatePlanRequest) (*response.PlanResponse, error)
	SetMeetingURL(ctx context.Context, tutorUserID, planID uuid.UUID, req *request.SetMeetingURLRequest) error
	GetTutorPlans(ctx context.Context, tutorUserID uuid.UUID) ([]response.PlanResponse, error)
}

type planService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPlanService(repo *repository.Repository, log *zap.Logger) PlanService {
	return &planService{
		repo: repo,
		log:  log.With(zap.String("service", "plan")),
	}
}

func (s *planService) CreatePlan(ctx context.Context, tutorUserID uuid.UUID, req *request.CreatePlanRequest) (*response.PlanResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create plan validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tutor, err := s.repo.Tutor.FindByUserID(ctx, tutorUserID)
	if err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	if tutor == nil {
		return nil, fmt.Errorf("create plan for user %s: %w", tutorUserID.String(), ErrTutorNotFound)
	}

	now := time.Now()
	plan := &entity.BookingPlan{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TutorID:      tutor.ID,
		PricePerHour: req.PricePerHour,
	}

	if err := s.repo.Plan.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	s.log.Info("Booking plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("tutor_id", tutor.ID.String()),
		zap.Float64("price_per_hour", plan.PricePerHour),
	)

	resp := response.PlanToResponse(plan)
	return &resp, nil
}

func (s *planService) SetMeetingURL(ctx context.Context, tutorUserID, planID uuid.UUID, req *request.SetMeetingURLRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set meeting URL validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	tutor, err := s.repo.Tutor.FindByUserID(ctx, tutorUserID)
	if err != nil {
		return fmt.Errorf("set meeting URL: %w", err)
	}
	if tutor == nil {
		return fmt.Errorf("set meeting URL for user %s: %w", tutorUserID.String(), ErrTutorNotFound)
	}

	plan, err := s.repo.Plan.FindByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("set meeting URL: %w", err)
	}
	if plan == nil {
		return fmt.Errorf("set meeting URL, plan %s: %w", planID.String(), ErrPlanNotFound)
	}

	if plan.TutorID != tutor.ID {
		return fmt.Errorf("set meeting URL, plan %s: %w", planID.String(), ErrUnauthorized)
	}

	if err := s.repo.Plan.UpdateMeetingURL(ctx, planID, req.MeetingURL); err != nil {
		return fmt.Errorf("set meeting URL: %w", err)
	}

	s.log.Info("Meeting URL updated", zap.String("plan_id", planID.String()))
	return nil
}

func (s *planService) GetTutorPlans(ctx context.Context, tutorUserID uuid.UUID) ([]response.PlanResponse, error) {
	tutor, err := s.repo.Tutor.FindByUserID(ctx, tutorUserID)
	if err != nil {
		return nil, fmt.Errorf("get tutor plans: %w", err)
	}
	if tutor == nil {
		return nil, fmt.Errorf("get tutor plans for user %s: %w", tutorUserID.String(), ErrTutorNotFound)
	}

	plans, err := s.repo.Plan.FindByTutorID(ctx, tutor.ID)
	if err != nil {
		return nil, fmt.Errorf("get tutor plans: %w", err)
	}

	responses := make([]response.PlanResponse, len(plans))
	for i, plan := range plans {
		responses[i] = response.PlanToResponse(plan)
	}

	return responses, nil
}
