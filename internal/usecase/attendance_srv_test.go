package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tutor-booking/internal/data/entity"
	"tutor-booking/internal/data/repository"
	"tutor-booking/internal/dto/request"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type attendanceFixture struct {
	service  AttendanceService
	slots    *fakeSlotRepo
	tutors   *fakeTutorRepo
	plans    *fakePlanRepo
	payments *fakePaymentRepo
	refunds  *fakeRefundRepo
	wallet   *fakeWalletRepo
	notifier *fakeNotifier
}

func newAttendanceFixture() *attendanceFixture {
	f := &attendanceFixture{
		slots:    &fakeSlotRepo{},
		tutors:   &fakeTutorRepo{},
		plans:    &fakePlanRepo{},
		payments: &fakePaymentRepo{},
		refunds:  &fakeRefundRepo{},
		wallet:   &fakeWalletRepo{},
		notifier: &fakeNotifier{},
	}

	repo := &repository.Repository{
		Tutor:   f.tutors,
		Plan:    f.plans,
		Slot:    f.slots,
		Payment: f.payments,
		Refund:  f.refunds,
		Wallet:  f.wallet,
	}

	f.service = NewAttendanceService(repo, f.notifier, zap.NewNop())
	return f
}

func paidSlot(learnerUserID, tutorID uuid.UUID, minutes int) *entity.BookingPlanSlot {
	start := time.Now().Add(2 * time.Hour)
	return &entity.BookingPlanSlot{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		LearnerUserID: learnerUserID,
		TutorID:       tutorID,
		Status:        entity.SlotStatusPaid,
		StartTime:     start,
		EndTime:       start.Add(time.Duration(minutes) * time.Minute),
	}
}

func joinReq() *request.ConfirmJoinRequest {
	return &request.ConfirmJoinRequest{Evidence: "screenshot-ref-01"}
}

func TestLearnerConfirmJoinSetsFlagAndEvidence(t *testing.T) {
	f := newAttendanceFixture()
	learnerID := uuid.New()
	slot := paidSlot(learnerID, uuid.New(), 60)
	f.slots.slots = append(f.slots.slots, slot)

	if err := f.service.LearnerConfirmJoin(context.Background(), learnerID, slot.ID, joinReq()); err != nil {
		t.Fatalf("LearnerConfirmJoin: %v", err)
	}

	stored := f.slots.stored(slot.ID)
	if !stored.LearnerJoin {
		t.Fatal("expected learner join flag set")
	}
	if stored.LearnerEvidence == nil || *stored.LearnerEvidence != "screenshot-ref-01" {
		t.Fatalf("expected evidence persisted, got %v", stored.LearnerEvidence)
	}
	if f.wallet.calls != 0 {
		t.Fatal("slot without payment must not trigger settlement")
	}
}

func TestLearnerConfirmJoinSlotNotFound(t *testing.T) {
	f := newAttendanceFixture()

	err := f.service.LearnerConfirmJoin(context.Background(), uuid.New(), uuid.New(), joinReq())
	if !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestLearnerConfirmJoinWrongLearner(t *testing.T) {
	f := newAttendanceFixture()
	slot := paidSlot(uuid.New(), uuid.New(), 60)
	f.slots.slots = append(f.slots.slots, slot)

	err := f.service.LearnerConfirmJoin(context.Background(), uuid.New(), slot.ID, joinReq())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if f.slots.updates != 0 {
		t.Fatal("rejected confirmation must not mutate the slot")
	}
}

func TestLearnerConfirmJoinRejectsUnpaidSlot(t *testing.T) {
	for _, status := range []entity.SlotStatus{entity.SlotStatusAvailable, entity.SlotStatusLocked} {
		f := newAttendanceFixture()
		learnerID := uuid.New()
		slot := paidSlot(learnerID, uuid.New(), 60)
		slot.Status = status
		f.slots.slots = append(f.slots.slots, slot)

		err := f.service.LearnerConfirmJoin(context.Background(), learnerID, slot.ID, joinReq())
		if !errors.Is(err, ErrInvalidSlotState) {
			t.Fatalf("status %s: expected ErrInvalidSlotState, got %v", status, err)
		}
		if f.slots.updates != 0 {
			t.Fatalf("status %s: rejected confirmation must not mutate the slot", status)
		}
	}
}

func TestLearnerConfirmJoinValidation(t *testing.T) {
	f := newAttendanceFixture()

	err := f.service.LearnerConfirmJoin(context.Background(), uuid.New(), uuid.New(), &request.ConfirmJoinRequest{})
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLearnerConfirmJoinPaymentLookupFailureIsSilent(t *testing.T) {
	f := newAttendanceFixture()
	learnerID := uuid.New()
	paymentID := uuid.New()
	slot := paidSlot(learnerID, uuid.New(), 60)
	slot.PaymentID = &paymentID
	f.slots.slots = append(f.slots.slots, slot)
	f.payments.findErr = errFakeRepo

	if err := f.service.LearnerConfirmJoin(context.Background(), learnerID, slot.ID, joinReq()); err != nil {
		t.Fatalf("payment failure must not surface on the learner path: %v", err)
	}
	if !f.slots.stored(slot.ID).LearnerJoin {
		t.Fatal("join must be persisted despite payment failure")
	}
	if f.wallet.calls != 0 {
		t.Fatal("settlement must be skipped when payment is unavailable")
	}
}

func TestLearnerConfirmJoinCoursePaymentSkipsSettlement(t *testing.T) {
	f := newAttendanceFixture()
	learnerID := uuid.New()
	tutorID := uuid.New()
	payment := &entity.Payment{
		Base:    entity.Base{ID: uuid.New()},
		Type:    entity.PaymentTypeCourse,
		TutorID: tutorID,
	}
	f.payments.payments = append(f.payments.payments, payment)

	slot := paidSlot(learnerID, tutorID, 60)
	slot.PaymentID = &payment.ID
	slot.TutorJoin = true
	f.slots.slots = append(f.slots.slots, slot)

	if err := f.service.LearnerConfirmJoin(context.Background(), learnerID, slot.ID, joinReq()); err != nil {
		t.Fatalf("LearnerConfirmJoin: %v", err)
	}
	if f.wallet.calls != 0 {
		t.Fatal("course payments never settle the booking wallet")
	}
}

func newTutorWithUser(f *attendanceFixture) (tutorID, tutorUserID uuid.UUID) {
	tutorID = uuid.New()
	tutorUserID = uuid.New()
	userID := tutorUserID
	f.tutors.tutors = append(f.tutors.tutors, &entity.Tutor{
		Base:   entity.Base{ID: tutorID},
		UserID: &userID,
	})
	return tutorID, tutorUserID
}

func TestTutorConfirmJoinSettlesWhenAllSlotsConfirmed(t *testing.T) {
	f := newAttendanceFixture()
	tutorID, tutorUserID := newTutorWithUser(f)
	learnerID := uuid.New()

	payment := &entity.Payment{
		Base:    entity.Base{ID: uuid.New()},
		Type:    entity.PaymentTypeBooking,
		TutorID: tutorID,
	}
	f.payments.payments = append(f.payments.payments, payment)

	sibling := paidSlot(learnerID, tutorID, 60)
	sibling.PaymentID = &payment.ID
	sibling.LearnerJoin = true
	sibling.TutorJoin = true

	slot := paidSlot(learnerID, tutorID, 60)
	slot.PaymentID = &payment.ID
	slot.LearnerJoin = true

	f.slots.slots = append(f.slots.slots, sibling, slot)
	f.wallet.balance = 250.00

	if err := f.service.TutorConfirmJoin(context.Background(), tutorUserID, slot.ID, joinReq()); err != nil {
		t.Fatalf("TutorConfirmJoin: %v", err)
	}

	if f.wallet.calls != 1 {
		t.Fatalf("expected one ledger recompute, got %d", f.wallet.calls)
	}
	if f.tutors.balanceCalls != 1 {
		t.Fatalf("expected one balance write, got %d", f.tutors.balanceCalls)
	}
	if got := f.tutors.balances[tutorID]; got != 250.00 {
		t.Fatalf("expected wallet balance 250.00, got %.2f", got)
	}
}

func TestTutorConfirmJoinLedgerFailurePropagates(t *testing.T) {
	f := newAttendanceFixture()
	tutorID, tutorUserID := newTutorWithUser(f)
	learnerID := uuid.New()

	payment := &entity.Payment{
		Base:    entity.Base{ID: uuid.New()},
		Type:    entity.PaymentTypeBooking,
		TutorID: tutorID,
	}
	f.payments.payments = append(f.payments.payments, payment)

	slot := paidSlot(learnerID, tutorID, 60)
	slot.PaymentID = &payment.ID
	slot.LearnerJoin = true
	f.slots.slots = append(f.slots.slots, slot)

	f.wallet.err = errFakeRepo

	err := f.service.TutorConfirmJoin(context.Background(), tutorUserID, slot.ID, joinReq())
	if !errors.Is(err, errFakeRepo) {
		t.Fatalf("ledger failure must propagate, got %v", err)
	}
	if !f.slots.stored(slot.ID).TutorJoin {
		t.Fatal("join must survive the failed settlement")
	}
	if f.tutors.balanceCalls != 0 {
		t.Fatal("no balance write after a failed recompute")
	}
}

func TestLearnerConfirmJoinLedgerFailurePropagates(t *testing.T) {
	f := newAttendanceFixture()
	learnerID := uuid.New()
	tutorID := uuid.New()

	payment := &entity.Payment{
		Base:    entity.Base{ID: uuid.New()},
		Type:    entity.PaymentTypeBooking,
		TutorID: tutorID,
	}
	f.payments.payments = append(f.payments.payments, payment)

	slot := paidSlot(learnerID, tutorID, 60)
	slot.PaymentID = &payment.ID
	slot.TutorJoin = true
	f.slots.slots = append(f.slots.slots, slot)

	f.wallet.err = errFakeRepo

	// Only the payment lookup is silent on the learner path; a failing ledger
	// is a hard error.
	err := f.service.LearnerConfirmJoin(context.Background(), learnerID, slot.ID, joinReq())
	if !errors.Is(err, errFakeRepo) {
		t.Fatalf("ledger failure must propagate, got %v", err)
	}
	if !f.slots.stored(slot.ID).LearnerJoin {
		t.Fatal("join must survive the failed settlement")
	}
}

func TestTutorConfirmJoinNoSettlementWhileSiblingUnconfirmed(t *testing.T) {
	f := newAttendanceFixture()
	tutorID, tutorUserID := newTutorWithUser(f)
	learnerID := uuid.New()

	payment := &entity.Payment{
		Base:    entity.Base{ID: uuid.New()},
		Type:    entity.PaymentTypeBooking,
		TutorID: tutorID,
	}
	f.payments.payments = append(f.payments.payments, payment)

	// Sibling is missing the learner confirmation.
	sibling := paidSlot(learnerID, tutorID, 60)
	sibling.PaymentID = &payment.ID
	sibling.TutorJoin = true

	slot := paidSlot(learnerID, tutorID, 60)
	slot.PaymentID = &payment.ID
	slot.LearnerJoin = true

	f.slots.slots = append(f.slots.slots, sibling, slot)

	if err := f.service.TutorConfirmJoin(context.Background(), tutorUserID, slot.ID, joinReq()); err != nil {
		t.Fatalf("TutorConfirmJoin: %v", err)
	}

	if f.wallet.calls != 0 {
		t.Fatal("settlement must wait for every sibling slot")
	}
	if !f.slots.stored(slot.ID).TutorJoin {
		t.Fatal("tutor join must be persisted even without settlement")
	}
}

func TestTutorConfirmJoinPaymentMissingStillPersistsJoin(t *testing.T) {
	f := newAttendanceFixture()
	tutorID, tutorUserID := newTutorWithUser(f)
	paymentID := uuid.New()

	slot := paidSlot(uuid.New(), tutorID, 60)
	slot.PaymentID = &paymentID
	f.slots.slots = append(f.slots.slots, slot)

	err := f.service.TutorConfirmJoin(context.Background(), tutorUserID, slot.ID, joinReq())
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
	if !f.slots.stored(slot.ID).TutorJoin {
		t.Fatal("join must be persisted before the payment lookup")
	}
}

func TestTutorConfirmJoinWrongTutor(t *testing.T) {
	f := newAttendanceFixture()
	_, tutorUserID := newTutorWithUser(f)

	slot := paidSlot(uuid.New(), uuid.New(), 60)
	f.slots.slots = append(f.slots.slots, slot)

	err := f.service.TutorConfirmJoin(context.Background(), tutorUserID, slot.ID, joinReq())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTutorConfirmJoinUnknownTutorProfile(t *testing.T) {
	f := newAttendanceFixture()
	slot := paidSlot(uuid.New(), uuid.New(), 60)
	f.slots.slots = append(f.slots.slots, slot)

	err := f.service.TutorConfirmJoin(context.Background(), uuid.New(), slot.ID, joinReq())
	if !errors.Is(err, ErrTutorNotFound) {
		t.Fatalf("expected ErrTutorNotFound, got %v", err)
	}
}

func TestLearnerComplainOpensProratedRefund(t *testing.T) {
	f := newAttendanceFixture()
	learnerID := uuid.New()
	tutorID := uuid.New()
	f.tutors.tutors = append(f.tutors.tutors, &entity.Tutor{Base: entity.Base{ID: tutorID}})

	plan := &entity.BookingPlan{
		Base:         entity.Base{ID: uuid.New()},
		TutorID:      tutorID,
		PricePerHour: 100.00,
	}
	f.plans.plans = append(f.plans.plans, plan)

	slot := paidSlot(learnerID, tutorID, 90)
	slot.PlanID = &plan.ID
	f.slots.slots = append(f.slots.slots, slot)

	resp, err := f.service.LearnerComplain(context.Background(), learnerID, slot.ID,
		&request.ComplainRequest{EvidenceURL: "https://evidence.example.com/call-log"})
	if err != nil {
		t.Fatalf("LearnerComplain: %v", err)
	}

	// 90 minutes at 100/hour prorates to 150.00.
	if resp.Amount != 150.00 {
		t.Fatalf("expected refund 150.00, got %.2f", resp.Amount)
	}
	if resp.Status != entity.RefundStatusPending {
		t.Fatalf("expected pending refund, got %s", resp.Status)
	}

	if len(f.refunds.refunds) != 1 {
		t.Fatalf("expected one refund request, got %d", len(f.refunds.refunds))
	}

	stored := f.slots.stored(slot.ID)
	if stored.LearnerJoin {
		t.Fatal("a complaint is not an attendance confirmation")
	}
	if stored.LearnerEvidence == nil || *stored.LearnerEvidence != "https://evidence.example.com/call-log" {
		t.Fatalf("expected evidence URL persisted, got %v", stored.LearnerEvidence)
	}

	if len(f.notifier.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.notifier.sent))
	}
	note := f.notifier.sent[0]
	if note.UserID != learnerID {
		t.Fatal("refund notification must target the learner")
	}
	if note.Kind != entity.NotificationKindRefundAvailable {
		t.Fatalf("expected refund_available kind, got %s", note.Kind)
	}
	if note.DeepLink != "/learner/refunds/"+f.refunds.refunds[0].ID.String() {
		t.Fatalf("unexpected deep link %s", note.DeepLink)
	}
}

func TestLearnerComplainRejectsUnpaidSlot(t *testing.T) {
	f := newAttendanceFixture()
	learnerID := uuid.New()
	slot := paidSlot(learnerID, uuid.New(), 60)
	slot.Status = entity.SlotStatusLocked
	f.slots.slots = append(f.slots.slots, slot)

	_, err := f.service.LearnerComplain(context.Background(), learnerID, slot.ID,
		&request.ComplainRequest{EvidenceURL: "https://evidence.example.com/x"})
	if !errors.Is(err, ErrInvalidSlotState) {
		t.Fatalf("expected ErrInvalidSlotState, got %v", err)
	}
}

func TestLearnerComplainWithoutPlan(t *testing.T) {
	f := newAttendanceFixture()
	learnerID := uuid.New()
	slot := paidSlot(learnerID, uuid.New(), 60)
	f.slots.slots = append(f.slots.slots, slot)

	_, err := f.service.LearnerComplain(context.Background(), learnerID, slot.ID,
		&request.ComplainRequest{EvidenceURL: "https://evidence.example.com/x"})
	if !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestLearnerComplainRefundCreateFailure(t *testing.T) {
	f := newAttendanceFixture()
	learnerID := uuid.New()
	tutorID := uuid.New()
	f.tutors.tutors = append(f.tutors.tutors, &entity.Tutor{Base: entity.Base{ID: tutorID}})

	plan := &entity.BookingPlan{
		Base:         entity.Base{ID: uuid.New()},
		TutorID:      tutorID,
		PricePerHour: 100.00,
	}
	f.plans.plans = append(f.plans.plans, plan)

	slot := paidSlot(learnerID, tutorID, 60)
	slot.PlanID = &plan.ID
	f.slots.slots = append(f.slots.slots, slot)

	f.refunds.createErr = errFakeRepo

	_, err := f.service.LearnerComplain(context.Background(), learnerID, slot.ID,
		&request.ComplainRequest{EvidenceURL: "https://evidence.example.com/x"})
	if !errors.Is(err, errFakeRepo) {
		t.Fatalf("refund persistence failure must propagate, got %v", err)
	}
	if len(f.notifier.sent) != 0 {
		t.Fatal("no notification may go out without a durable refund request")
	}
}

func TestLearnerComplainNotificationFailureIsNotFatal(t *testing.T) {
	f := newAttendanceFixture()
	f.notifier.failAll = true
	learnerID := uuid.New()
	tutorID := uuid.New()
	f.tutors.tutors = append(f.tutors.tutors, &entity.Tutor{Base: entity.Base{ID: tutorID}})

	plan := &entity.BookingPlan{
		Base:         entity.Base{ID: uuid.New()},
		TutorID:      tutorID,
		PricePerHour: 80.00,
	}
	f.plans.plans = append(f.plans.plans, plan)

	slot := paidSlot(learnerID, tutorID, 60)
	slot.PlanID = &plan.ID
	f.slots.slots = append(f.slots.slots, slot)

	resp, err := f.service.LearnerComplain(context.Background(), learnerID, slot.ID,
		&request.ComplainRequest{EvidenceURL: "https://evidence.example.com/x"})
	if err != nil {
		t.Fatalf("notification failure must not fail the complaint: %v", err)
	}
	if resp == nil || len(f.refunds.refunds) != 1 {
		t.Fatal("refund must be durable despite the failed notification")
	}
}
