package usecase

import (
	"context"
	"errors"
	"time"

	"tutor-booking/internal/data/entity"

	"github.com/google/uuid"
)

var errFakeRepo = errors.New("fake repository failure")

// fakeSlotRepo returns copies on read so a test only observes mutations that
// went through Update, the same contract the SQL implementation gives.
type fakeSlotRepo struct {
	slots     []*entity.BookingPlanSlot
	updateErr error
	updates   int
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *entity.BookingPlanSlot) error {
	c := *slot
	f.slots = append(f.slots, &c)
	return nil
}

func (f *fakeSlotRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BookingPlanSlot, error) {
	for _, s := range f.slots {
		if s.ID == id {
			c := *s
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotRepo) FindAllByPaymentID(_ context.Context, paymentID uuid.UUID) ([]*entity.BookingPlanSlot, error) {
	var out []*entity.BookingPlanSlot
	for _, s := range f.slots {
		if s.PaymentID != nil && *s.PaymentID == paymentID {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) FindByLearnerUserID(_ context.Context, learnerUserID uuid.UUID) ([]*entity.BookingPlanSlot, error) {
	var out []*entity.BookingPlanSlot
	for _, s := range f.slots {
		if s.LearnerUserID == learnerUserID {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) FindByTutorID(_ context.Context, tutorID uuid.UUID) ([]*entity.BookingPlanSlot, error) {
	var out []*entity.BookingPlanSlot
	for _, s := range f.slots {
		if s.TutorID == tutorID {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) FindByTutorIDAndStatus(_ context.Context, tutorID uuid.UUID, status entity.SlotStatus) ([]*entity.BookingPlanSlot, error) {
	var out []*entity.BookingPlanSlot
	for _, s := range f.slots {
		if s.TutorID == tutorID && s.Status == status {
			c := *s
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) FindDueForReminder(_ context.Context, from, until time.Time) ([]*entity.BookingPlanSlot, error) {
	var out []*entity.BookingPlanSlot
	for _, s := range f.slots {
		if s.Status != entity.SlotStatusPaid || s.ReminderSent {
			continue
		}
		if s.StartTime.Before(from) || !s.StartTime.Before(until) {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeSlotRepo) Update(_ context.Context, slot *entity.BookingPlanSlot) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i, s := range f.slots {
		if s.ID == slot.ID {
			c := *slot
			f.slots[i] = &c
			f.updates++
			return nil
		}
	}
	return errFakeRepo
}

// stored returns the persisted state of a slot, bypassing the copy semantics.
func (f *fakeSlotRepo) stored(id uuid.UUID) *entity.BookingPlanSlot {
	for _, s := range f.slots {
		if s.ID == id {
			return s
		}
	}
	return nil
}

type fakeTutorRepo struct {
	tutors       []*entity.Tutor
	findErr      error
	balances     map[uuid.UUID]float64
	balanceCalls int
}

func (f *fakeTutorRepo) Create(_ context.Context, tutor *entity.Tutor) error {
	f.tutors = append(f.tutors, tutor)
	return nil
}

func (f *fakeTutorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Tutor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, t := range f.tutors {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTutorRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Tutor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, t := range f.tutors {
		if t.UserID != nil && *t.UserID == userID {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTutorRepo) FindAllByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Tutor, error) {
	var out []*entity.Tutor
	for _, id := range ids {
		for _, t := range f.tutors {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (f *fakeTutorRepo) UpdateWalletBalance(_ context.Context, tutorID uuid.UUID, balance float64) error {
	if f.balances == nil {
		f.balances = make(map[uuid.UUID]float64)
	}
	f.balances[tutorID] = balance
	f.balanceCalls++
	return nil
}

type fakePlanRepo struct {
	plans []*entity.BookingPlan
}

func (f *fakePlanRepo) Create(_ context.Context, plan *entity.BookingPlan) error {
	f.plans = append(f.plans, plan)
	return nil
}

func (f *fakePlanRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BookingPlan, error) {
	for _, p := range f.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePlanRepo) FindAllByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.BookingPlan, error) {
	var out []*entity.BookingPlan
	for _, id := range ids {
		for _, p := range f.plans {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (f *fakePlanRepo) FindByTutorID(_ context.Context, tutorID uuid.UUID) ([]*entity.BookingPlan, error) {
	var out []*entity.BookingPlan
	for _, p := range f.plans {
		if p.TutorID == tutorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) UpdateMeetingURL(_ context.Context, planID uuid.UUID, meetingURL string) error {
	for _, p := range f.plans {
		if p.ID == planID {
			url := meetingURL
			p.MeetingURL = &url
			return nil
		}
	}
	return errFakeRepo
}

type fakePaymentRepo struct {
	payments []*entity.Payment
	findErr  error
}

func (f *fakePaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

type fakeRefundRepo struct {
	refunds   []*entity.RefundRequest
	createErr error
}

func (f *fakeRefundRepo) Create(_ context.Context, refund *entity.RefundRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.refunds = append(f.refunds, refund)
	return nil
}

func (f *fakeRefundRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.RefundRequest, error) {
	var out []*entity.RefundRequest
	for _, r := range f.refunds {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAllByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.User, error) {
	var out []*entity.User
	for _, id := range ids {
		for _, u := range f.users {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type fakeWalletRepo struct {
	balance float64
	err     error
	calls   int
}

func (f *fakeWalletRepo) RecomputeBalance(_ context.Context, tutorID uuid.UUID) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.balance, nil
}

type sentNotification struct {
	UserID   uuid.UUID
	Title    string
	Body     string
	Kind     entity.NotificationKind
	DeepLink string
}

type fakeNotifier struct {
	sent      []sentNotification
	failUsers map[uuid.UUID]bool
	failAll   bool
}

func (f *fakeNotifier) Send(_ context.Context, userID uuid.UUID, title, body string, kind entity.NotificationKind, deepLink string) error {
	if f.failAll || f.failUsers[userID] {
		return errors.New("fake notifier failure")
	}
	f.sent = append(f.sent, sentNotification{
		UserID:   userID,
		Title:    title,
		Body:     body,
		Kind:     kind,
		DeepLink: deepLink,
	})
	return nil
}
