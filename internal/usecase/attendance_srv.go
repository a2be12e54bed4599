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

// Deep links embedded in notifications produced by this engine.
const refundDeepLinkPrefix = "/learner/refunds/"

type AttendanceService interface {
	// LearnerConfirmJoin records the learner's presence on a paid slot and,
	// when the slot is covered by a booking payment, re-checks settlement.
	LearnerConfirmJoin(ctx context.Context, learnerUserID, slotID uuid.UUID, req *request.ConfirmJoinRequest) error

	// TutorConfirmJoin records the tutor's presence on a paid slot. The join
	// is persisted before any payment lookup so a settlement failure never
	// loses the confirmation.
	TutorConfirmJoin(ctx context.Context, tutorUserID, slotID uuid.UUID, req *request.ConfirmJoinRequest) error

	// LearnerComplain files a dispute on a paid slot: stores the evidence,
	// opens a prorated refund request and notifies the learner best-effort.
	LearnerComplain(ctx context.Context, learnerUserID, slotID uuid.UUID, req *request.ComplainRequest) (*response.RefundResponse, error)

	// GetUserRefunds lists the caller's refund requests, newest first.
	GetUserRefunds(ctx context.Context, userID uuid.UUID) ([]response.RefundResponse, error)
}

type attendanceService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewAttendanceService(repo *repository.Repository, notifier Notifier, log *zap.Logger) AttendanceService {
	return &attendanceService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "attendance")),
	}
}

func (s *attendanceService) LearnerConfirmJoin(ctx context.Context, learnerUserID, slotID uuid.UUID, req *request.ConfirmJoinRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Learner confirm join validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("learner confirm join: %w", err)
	}
	if slot == nil {
		return fmt.Errorf("learner confirm join %s: %w", slotID.String(), ErrSlotNotFound)
	}

	if slot.LearnerUserID != learnerUserID {
		return fmt.Errorf("learner confirm join %s: %w", slotID.String(), ErrUnauthorized)
	}

	if slot.Status != entity.SlotStatusPaid {
		return fmt.Errorf("learner confirm join %s (status %s): %w", slotID.String(), slot.Status, ErrInvalidSlotState)
	}

	evidence := req.Evidence
	slot.LearnerJoin = true
	slot.LearnerEvidence = &evidence
	slot.UpdatedAt = time.Now()

	if err := s.repo.Slot.Update(ctx, slot); err != nil {
		return fmt.Errorf("learner confirm join: %w", err)
	}

	s.log.Info("Learner confirmed join",
		zap.String("slot_id", slot.ID.String()),
		zap.String("learner_user_id", learnerUserID.String()),
	)

	if slot.PaymentID == nil {
		return nil
	}

	// Payment problems on the learner path never fail the confirmation:
	// the join is already durable and settlement can be re-checked later.
	payment, err := s.repo.Payment.FindByID(ctx, *slot.PaymentID)
	if err != nil || payment == nil {
		s.log.Warn("Skipping settlement check, payment unavailable",
			zap.Error(err),
			zap.String("slot_id", slot.ID.String()),
			zap.String("payment_id", slot.PaymentID.String()),
		)
		return nil
	}
	if payment.Type != entity.PaymentTypeBooking {
		return nil
	}

	return s.settleIfFullyConfirmed(ctx, slot.TutorID, *slot.PaymentID)
}

func (s *attendanceService) TutorConfirmJoin(ctx context.Context, tutorUserID, slotID uuid.UUID, req *request.ConfirmJoinRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Tutor confirm join validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		return fmt.Errorf("tutor confirm join: %w", err)
	}
	if slot == nil {
		return fmt.Errorf("tutor confirm join %s: %w", slotID.String(), ErrSlotNotFound)
	}

	tutor, err := s.repo.Tutor.FindByUserID(ctx, tutorUserID)
	if err != nil {
		return fmt.Errorf("tutor confirm join: %w", err)
	}
	if tutor == nil {
		return fmt.Errorf("tutor confirm join for user %s: %w", tutorUserID.String(), ErrTutorNotFound)
	}

	if tutor.ID != slot.TutorID {
		return fmt.Errorf("tutor confirm join %s: %w", slotID.String(), ErrUnauthorized)
	}

	if slot.Status != entity.SlotStatusPaid {
		return fmt.Errorf("tutor confirm join %s (status %s): %w", slotID.String(), slot.Status, ErrInvalidSlotState)
	}

	evidence := req.Evidence
	slot.TutorJoin = true
	slot.TutorEvidence = &evidence
	slot.UpdatedAt = time.Now()

	// Persist before touching the payment: the confirmation must survive a
	// failing settlement path.
	if err := s.repo.Slot.Update(ctx, slot); err != nil {
		return fmt.Errorf("tutor confirm join: %w", err)
	}

	s.log.Info("Tutor confirmed join",
		zap.String("slot_id", slot.ID.String()),
		zap.String("tutor_id", tutor.ID.String()),
	)

	if slot.PaymentID == nil {
		return nil
	}

	payment, err := s.repo.Payment.FindByID(ctx, *slot.PaymentID)
	if err != nil {
		return fmt.Errorf("tutor confirm join: %w", err)
	}
	if payment == nil {
		return fmt.Errorf("tutor confirm join %s, payment %s: %w", slotID.String(), slot.PaymentID.String(), ErrPaymentNotFound)
	}
	if payment.Type != entity.PaymentTypeBooking {
		return nil
	}

	return s.settleIfFullyConfirmed(ctx, slot.TutorID, *slot.PaymentID)
}

func (s *attendanceService) LearnerComplain(ctx context.Context, learnerUserID, slotID uuid.UUID, req *request.ComplainRequest) (*response.RefundResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Learner complain validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	slot, err := s.repo.Slot.FindByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("learner complain: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("learner complain %s: %w", slotID.String(), ErrSlotNotFound)
	}

	if slot.LearnerUserID != learnerUserID {
		return nil, fmt.Errorf("learner complain %s: %w", slotID.String(), ErrUnauthorized)
	}

	if slot.Status != entity.SlotStatusPaid {
		return nil, fmt.Errorf("learner complain %s (status %s): %w", slotID.String(), slot.Status, ErrInvalidSlotState)
	}

	// A complaint stores evidence but is not an attendance confirmation;
	// the learner join flag stays untouched.
	evidenceURL := req.EvidenceURL
	slot.LearnerEvidence = &evidenceURL
	slot.UpdatedAt = time.Now()

	if err := s.repo.Slot.Update(ctx, slot); err != nil {
		return nil, fmt.Errorf("learner complain: %w", err)
	}

	if slot.PlanID == nil {
		return nil, fmt.Errorf("learner complain %s: %w", slotID.String(), ErrPlanNotFound)
	}

	plan, err := s.repo.Plan.FindByID(ctx, *slot.PlanID)
	if err != nil {
		return nil, fmt.Errorf("learner complain: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("learner complain %s, plan %s: %w", slotID.String(), slot.PlanID.String(), ErrPlanNotFound)
	}

	tutor, err := s.repo.Tutor.FindByID(ctx, slot.TutorID)
	if err != nil {
		return nil, fmt.Errorf("learner complain: %w", err)
	}
	if tutor == nil {
		return nil, fmt.Errorf("learner complain %s, tutor %s: %w", slotID.String(), slot.TutorID.String(), ErrTutorNotFound)
	}

	refundAmount := utils.RoundMoney(plan.PricePerHour * slot.Duration().Minutes() / 60)

	now := time.Now()
	refund := &entity.RefundRequest{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PlanID: plan.ID,
		SlotID: slot.ID,
		UserID: learnerUserID,
		Amount: refundAmount,
		Status: entity.RefundStatusPending,
	}

	if err := s.repo.Refund.Create(ctx, refund); err != nil {
		return nil, fmt.Errorf("learner complain: %w", err)
	}

	s.log.Info("Refund request opened",
		zap.String("refund_id", refund.ID.String()),
		zap.String("slot_id", slot.ID.String()),
		zap.Float64("amount", refundAmount),
	)

	// Best effort: the refund request is already durable, a failed
	// notification must not roll it back.
	if err := s.notifier.Send(ctx, learnerUserID,
		"Refund available",
		fmt.Sprintf("Your complaint was received. A refund of %.2f is being processed.", refundAmount),
		entity.NotificationKindRefundAvailable,
		refundDeepLinkPrefix+refund.ID.String(),
	); err != nil {
		s.log.Warn("Failed to send refund notification",
			zap.Error(err),
			zap.String("refund_id", refund.ID.String()),
		)
	}

	resp := response.RefundToResponse(refund)
	return &resp, nil
}

func (s *attendanceService) GetUserRefunds(ctx context.Context, userID uuid.UUID) ([]response.RefundResponse, error) {
	refunds, err := s.repo.Refund.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user refunds: %w", err)
	}

	responses := make([]response.RefundResponse, len(refunds))
	for i, refund := range refunds {
		responses[i] = response.RefundToResponse(refund)
	}

	return responses, nil
}

// settleIfFullyConfirmed releases the tutor's earnings once every slot paid
// for by the same payment is confirmed on both sides. The check deliberately
// runs on every qualifying confirmation; the ledger recomputes from source
// truth, so redundant runs converge on the same balance.
func (s *attendanceService) settleIfFullyConfirmed(ctx context.Context, tutorID, paymentID uuid.UUID) error {
	slots, err := s.repo.Slot.FindAllByPaymentID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("settlement check: %w", err)
	}

	for _, slot := range slots {
		if !slot.FullyConfirmed() {
			return nil
		}
	}

	balance, err := s.repo.Wallet.RecomputeBalance(ctx, tutorID)
	if err != nil {
		return fmt.Errorf("settlement check: %w", err)
	}

	if err := s.repo.Tutor.UpdateWalletBalance(ctx, tutorID, balance); err != nil {
		return fmt.Errorf("settlement check: %w", err)
	}

	s.log.Info("Tutor wallet settled",
		zap.String("tutor_id", tutorID.String()),
		zap.String("payment_id", paymentID.String()),
		zap.Float64("balance", balance),
	)

	return nil
}
