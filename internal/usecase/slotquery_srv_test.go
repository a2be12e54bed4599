package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"tutor-booking/internal/data/entity"
	"tutor-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type slotQueryFixture struct {
	service SlotQueryService
	slots   *fakeSlotRepo
	tutors  *fakeTutorRepo
	plans   *fakePlanRepo
	users   *fakeUserRepo
}

func newSlotQueryFixture() *slotQueryFixture {
	f := &slotQueryFixture{
		slots:  &fakeSlotRepo{},
		tutors: &fakeTutorRepo{},
		plans:  &fakePlanRepo{},
		users:  &fakeUserRepo{},
	}

	repo := &repository.Repository{
		User:  f.users,
		Tutor: f.tutors,
		Plan:  f.plans,
		Slot:  f.slots,
	}

	f.service = NewSlotQueryService(repo, zap.NewNop())
	return f
}

func (f *slotQueryFixture) addNamedTutor(fullName string) (tutorID, tutorUserID uuid.UUID) {
	tutorID = uuid.New()
	tutorUserID = uuid.New()
	userID := tutorUserID

	f.tutors.tutors = append(f.tutors.tutors, &entity.Tutor{
		Base:   entity.Base{ID: tutorID},
		UserID: &userID,
	})
	f.users.users = append(f.users.users, &entity.User{
		Base:     entity.Base{ID: tutorUserID},
		FullName: fullName,
		Role:     entity.RoleTutor,
	})
	return tutorID, tutorUserID
}

func (f *slotQueryFixture) addPlan(tutorID uuid.UUID, meetingURL string) *entity.BookingPlan {
	plan := &entity.BookingPlan{
		Base:         entity.Base{ID: uuid.New()},
		TutorID:      tutorID,
		PricePerHour: 100,
	}
	if meetingURL != "" {
		url := meetingURL
		plan.MeetingURL = &url
	}
	f.plans.plans = append(f.plans.plans, plan)
	return plan
}

func querySlot(learnerUserID, tutorID uuid.UUID, planID *uuid.UUID, status entity.SlotStatus) *entity.BookingPlanSlot {
	start := time.Now().Add(24 * time.Hour)
	return &entity.BookingPlanSlot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		LearnerUserID: learnerUserID,
		TutorID:       tutorID,
		PlanID:        planID,
		Status:        status,
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
	}
}

func TestMeetingURLDisclosedOnlyForPaidSlots(t *testing.T) {
	f := newSlotQueryFixture()
	tutorID, _ := f.addNamedTutor("Ada Tutor")
	plan := f.addPlan(tutorID, "https://meet.example.com/room-1")
	learnerID := uuid.New()

	paid := querySlot(learnerID, tutorID, &plan.ID, entity.SlotStatusPaid)
	locked := querySlot(learnerID, tutorID, &plan.ID, entity.SlotStatusLocked)
	f.slots.slots = append(f.slots.slots, paid, locked)

	resp, err := f.service.GetSlotsForUser(context.Background(), learnerID)
	if err != nil {
		t.Fatalf("GetSlotsForUser: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(resp))
	}

	byID := make(map[string]int)
	for i, r := range resp {
		byID[r.ID] = i
	}

	paidResp := resp[byID[paid.ID.String()]]
	if paidResp.MeetingURL == nil || *paidResp.MeetingURL != "https://meet.example.com/room-1" {
		t.Fatalf("paid slot must disclose the meeting URL, got %v", paidResp.MeetingURL)
	}

	lockedResp := resp[byID[locked.ID.String()]]
	if lockedResp.MeetingURL != nil {
		t.Fatalf("unpaid slot must hide the meeting URL, got %v", *lockedResp.MeetingURL)
	}
}

func TestMeetingURLHiddenWhenPlanHasNone(t *testing.T) {
	f := newSlotQueryFixture()
	tutorID, _ := f.addNamedTutor("Ada Tutor")
	plan := f.addPlan(tutorID, "")
	learnerID := uuid.New()

	paid := querySlot(learnerID, tutorID, &plan.ID, entity.SlotStatusPaid)
	f.slots.slots = append(f.slots.slots, paid)

	resp, err := f.service.GetSlotsForUser(context.Background(), learnerID)
	if err != nil {
		t.Fatalf("GetSlotsForUser: %v", err)
	}
	if resp[0].MeetingURL != nil {
		t.Fatal("plan without URL must project nil")
	}
}

func TestTutorNameResolvedRegardlessOfStatus(t *testing.T) {
	f := newSlotQueryFixture()
	tutorID, _ := f.addNamedTutor("Ada Tutor")
	learnerID := uuid.New()

	locked := querySlot(learnerID, tutorID, nil, entity.SlotStatusLocked)
	f.slots.slots = append(f.slots.slots, locked)

	resp, err := f.service.GetSlotsForUser(context.Background(), learnerID)
	if err != nil {
		t.Fatalf("GetSlotsForUser: %v", err)
	}
	if resp[0].TutorFullName != "Ada Tutor" {
		t.Fatalf("expected tutor name on unpaid slot, got %q", resp[0].TutorFullName)
	}
}

func TestTutorNameDegradesWhenUnlinked(t *testing.T) {
	f := newSlotQueryFixture()

	// Tutor profile without a linked user.
	tutorID := uuid.New()
	f.tutors.tutors = append(f.tutors.tutors, &entity.Tutor{Base: entity.Base{ID: tutorID}})
	learnerID := uuid.New()

	slot := querySlot(learnerID, tutorID, nil, entity.SlotStatusPaid)
	f.slots.slots = append(f.slots.slots, slot)

	resp, err := f.service.GetSlotsForUser(context.Background(), learnerID)
	if err != nil {
		t.Fatalf("unresolvable tutor must not fail the projection: %v", err)
	}
	if resp[0].TutorFullName != "" {
		t.Fatalf("expected empty tutor name, got %q", resp[0].TutorFullName)
	}
}

func TestGetPaidSlotsByTutorFiltersStatus(t *testing.T) {
	f := newSlotQueryFixture()
	tutorID, _ := f.addNamedTutor("Ada Tutor")

	paid := querySlot(uuid.New(), tutorID, nil, entity.SlotStatusPaid)
	locked := querySlot(uuid.New(), tutorID, nil, entity.SlotStatusLocked)
	f.slots.slots = append(f.slots.slots, paid, locked)

	resp, err := f.service.GetPaidSlotsByTutor(context.Background(), tutorID)
	if err != nil {
		t.Fatalf("GetPaidSlotsByTutor: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 paid slot, got %d", len(resp))
	}
	if resp[0].ID != paid.ID.String() {
		t.Fatal("expected the paid slot")
	}
}

func TestGetSlotsForTutorResolvesProfile(t *testing.T) {
	f := newSlotQueryFixture()
	tutorID, tutorUserID := f.addNamedTutor("Ada Tutor")

	slot := querySlot(uuid.New(), tutorID, nil, entity.SlotStatusPaid)
	f.slots.slots = append(f.slots.slots, slot)

	resp, err := f.service.GetSlotsForTutor(context.Background(), tutorUserID)
	if err != nil {
		t.Fatalf("GetSlotsForTutor: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(resp))
	}
}

func TestGetSlotsForTutorUnknownUser(t *testing.T) {
	f := newSlotQueryFixture()

	_, err := f.service.GetSlotsForTutor(context.Background(), uuid.New())
	if !errors.Is(err, ErrTutorNotFound) {
		t.Fatalf("expected ErrTutorNotFound, got %v", err)
	}
}

func TestEmptyProjectionReturnsEmptySlice(t *testing.T) {
	f := newSlotQueryFixture()

	resp, err := f.service.GetSlotsForUser(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetSlotsForUser: %v", err)
	}
	if resp == nil || len(resp) != 0 {
		t.Fatalf("expected empty slice, got %v", resp)
	}
}
