package usecase

import (
	"context"
	"fmt"

	"tutor-booking/internal/data/entity"
	"tutor-booking/internal/data/repository"
	"tutor-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SlotQueryService interface {
	// GetSlotsForUser returns every slot owned by the learner.
	GetSlotsForUser(ctx context.Context, userID uuid.UUID) ([]response.SlotResponse, error)

	// GetPaidSlotsByTutor returns a tutor's slots filtered to paid status.
	GetPaidSlotsByTutor(ctx context.Context, tutorID uuid.UUID) ([]response.SlotResponse, error)

	// GetSlotsForTutor resolves the tutor behind a user account, then
	// returns all of that tutor's slots.
	GetSlotsForTutor(ctx context.Context, userID uuid.UUID) ([]response.SlotResponse, error)
}

type slotQueryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewSlotQueryService(repo *repository.Repository, log *zap.Logger) SlotQueryService {
	return &slotQueryService{
		repo: repo,
		log:  log.With(zap.String("service", "slot_query")),
	}
}

func (s *slotQueryService) GetSlotsForUser(ctx context.Context, userID uuid.UUID) ([]response.SlotResponse, error) {
	slots, err := s.repo.Slot.FindByLearnerUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get slots for user: %w", err)
	}

	return s.project(ctx, slots)
}

func (s *slotQueryService) GetPaidSlotsByTutor(ctx context.Context, tutorID uuid.UUID) ([]response.SlotResponse, error) {
	slots, err := s.repo.Slot.FindByTutorIDAndStatus(ctx, tutorID, entity.SlotStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("get paid slots by tutor: %w", err)
	}

	return s.project(ctx, slots)
}

func (s *slotQueryService) GetSlotsForTutor(ctx context.Context, userID uuid.UUID) ([]response.SlotResponse, error) {
	tutor, err := s.repo.Tutor.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get slots for tutor: %w", err)
	}
	if tutor == nil {
		return nil, fmt.Errorf("get slots for tutor, user %s: %w", userID.String(), ErrTutorNotFound)
	}

	slots, err := s.repo.Slot.FindByTutorID(ctx, tutor.ID)
	if err != nil {
		return nil, fmt.Errorf("get slots for tutor: %w", err)
	}

	return s.project(ctx, slots)
}

// project joins slots with their plan meeting URLs and tutor display names.
// Plans, tutors and linked users are each resolved in one batched lookup so
// the projection never degrades into per-slot queries.
func (s *slotQueryService) project(ctx context.Context, slots []*entity.BookingPlanSlot) ([]response.SlotResponse, error) {
	if len(slots) == 0 {
		return []response.SlotResponse{}, nil
	}

	planIDs := make([]uuid.UUID, 0, len(slots))
	tutorIDs := make([]uuid.UUID, 0, len(slots))
	seenPlans := make(map[uuid.UUID]bool)
	seenTutors := make(map[uuid.UUID]bool)

	for _, slot := range slots {
		if slot.PlanID != nil && !seenPlans[*slot.PlanID] {
			seenPlans[*slot.PlanID] = true
			planIDs = append(planIDs, *slot.PlanID)
		}
		if !seenTutors[slot.TutorID] {
			seenTutors[slot.TutorID] = true
			tutorIDs = append(tutorIDs, slot.TutorID)
		}
	}

	plans, err := s.repo.Plan.FindAllByIDs(ctx, planIDs)
	if err != nil {
		return nil, fmt.Errorf("project slots: %w", err)
	}
	plansByID := make(map[uuid.UUID]*entity.BookingPlan, len(plans))
	for _, plan := range plans {
		plansByID[plan.ID] = plan
	}

	tutors, err := s.repo.Tutor.FindAllByIDs(ctx, tutorIDs)
	if err != nil {
		return nil, fmt.Errorf("project slots: %w", err)
	}
	tutorsByID := make(map[uuid.UUID]*entity.Tutor, len(tutors))
	userIDs := make([]uuid.UUID, 0, len(tutors))
	for _, tutor := range tutors {
		tutorsByID[tutor.ID] = tutor
		if tutor.UserID != nil {
			userIDs = append(userIDs, *tutor.UserID)
		}
	}

	users, err := s.repo.User.FindAllByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("project slots: %w", err)
	}
	usersByID := make(map[uuid.UUID]*entity.User, len(users))
	for _, user := range users {
		usersByID[user.ID] = user
	}

	responses := make([]response.SlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = response.SlotToResponse(
			slot,
			meetingURLFor(slot, plansByID),
			tutorFullNameFor(slot, tutorsByID, usersByID),
		)
	}

	return responses, nil
}

// meetingURLFor discloses the plan's meeting URL only for paid slots. The
// gate is the slot status, not the plan content: an unpaid slot reports no
// URL even when its plan has one.
func meetingURLFor(slot *entity.BookingPlanSlot, plansByID map[uuid.UUID]*entity.BookingPlan) *string {
	if slot.Status != entity.SlotStatusPaid || slot.PlanID == nil {
		return nil
	}

	plan := plansByID[*slot.PlanID]
	if plan == nil || plan.MeetingURL == nil || *plan.MeetingURL == "" {
		return nil
	}

	return plan.MeetingURL
}

// tutorFullNameFor resolves the tutor's display name regardless of slot
// status, degrading to "" when the tutor or linked user is unresolvable.
func tutorFullNameFor(slot *entity.BookingPlanSlot, tutorsByID map[uuid.UUID]*entity.Tutor, usersByID map[uuid.UUID]*entity.User) string {
	tutor := tutorsByID[slot.TutorID]
	if tutor == nil || tutor.UserID == nil {
		return ""
	}

	user := usersByID[*tutor.UserID]
	if user == nil {
		return ""
	}

	return user.FullName
}
