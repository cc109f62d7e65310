package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type fakePaymentStorage struct {
	payments map[string]*entity.Payment
	orgID    string
}

func newFakePaymentStorage() *fakePaymentStorage {
	return &fakePaymentStorage{payments: make(map[string]*entity.Payment), orgID: testOrgID}
}

func (f *fakePaymentStorage) Create(_ context.Context, payment *entity.Payment) (*entity.Payment, error) {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	f.payments[payment.ID] = payment
	return payment, nil
}

func (f *fakePaymentStorage) Get(_ context.Context, organizationID, id string) (*entity.Payment, error) {
	p, ok := f.payments[id]
	if !ok || organizationID != f.orgID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakePaymentStorage) List(_ context.Context, organizationID string, _ dto.PaymentFilter) ([]entity.Payment, error) {
	if organizationID != f.orgID {
		return nil, nil
	}
	var out []entity.Payment
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePaymentStorage) Update(_ context.Context, payment *entity.Payment) (*entity.Payment, error) {
	clone := *payment
	f.payments[payment.ID] = &clone
	return payment, nil
}

func (f *fakePaymentStorage) Delete(_ context.Context, id string) error {
	delete(f.payments, id)
	return nil
}

func (f *fakePaymentStorage) Summary(_ context.Context, _ string) (*dto.PaymentSummary, error) {
	return &dto.PaymentSummary{}, nil
}

type fakePaymentTypeStorage struct {
	types map[string]*entity.PaymentType
}

func (f *fakePaymentTypeStorage) Get(_ context.Context, organizationID, id string) (*entity.PaymentType, error) {
	pt, ok := f.types[id]
	if !ok || pt.OrganizationID != organizationID {
		return nil, gorm.ErrRecordNotFound
	}
	return pt, nil
}

func (f *fakePaymentTypeStorage) ListByOrganization(_ context.Context, organizationID string) ([]entity.PaymentType, error) {
	var out []entity.PaymentType
	for _, pt := range f.types {
		if pt.OrganizationID == organizationID {
			out = append(out, *pt)
		}
	}
	return out, nil
}

type paymentFixture struct {
	service  *PaymentService
	payments *fakePaymentStorage
	clock    clockwork.FakeClock

	athleteID     string
	paymentTypeID string
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	payments := newFakePaymentStorage()
	athletes := newFakeAthleteStorage()
	clock := clockwork.NewFakeClockAt(date(2026, time.March, 1))

	athlete, err := athletes.Create(context.Background(), &entity.Athlete{
		OrganizationID: testOrgID,
		FirstName:      "Luca",
		LastName:       "Verdi",
	})
	require.NoError(t, err)

	paymentType := &entity.PaymentType{
		ID:             uuid.New().String(),
		OrganizationID: testOrgID,
		Name:           "Quota Mensile",
		Amount:         50,
		Frequency:      "monthly",
	}
	types := &fakePaymentTypeStorage{types: map[string]*entity.PaymentType{paymentType.ID: paymentType}}

	return &paymentFixture{
		service:       NewPaymentService(payments, types, athletes, clock),
		payments:      payments,
		clock:         clock,
		athleteID:     athlete.ID,
		paymentTypeID: paymentType.ID,
	}
}

func (f *paymentFixture) seedPayment(t *testing.T, dueDate time.Time) *entity.Payment {
	t.Helper()
	payment, err := f.service.Create(context.Background(), testOrgID, dto.CreatePayment{
		AthleteID:     f.athleteID,
		PaymentTypeID: f.paymentTypeID,
		Amount:        50,
		DueDate:       dueDate,
		Period:        "2026-03",
	})
	require.NoError(t, err)
	return payment
}

func TestCreatePaymentPastDueStartsOverdue(t *testing.T) {
	f := newPaymentFixture(t)

	payment := f.seedPayment(t, date(2026, time.February, 1))

	assert.Equal(t, entity.PaymentStatusOverdue, payment.Status)
}

func TestCreatePaymentFutureDueStartsPending(t *testing.T) {
	f := newPaymentFixture(t)

	payment := f.seedPayment(t, date(2026, time.April, 1))

	assert.Equal(t, entity.PaymentStatusPending, payment.Status)
}

func TestListFlipsPendingToOverdue(t *testing.T) {
	f := newPaymentFixture(t)
	payment := f.seedPayment(t, date(2026, time.April, 1))
	f.clock.Advance(45 * 24 * time.Hour)

	payments, err := f.service.List(context.Background(), testOrgID, dto.PaymentFilter{})

	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, entity.PaymentStatusOverdue, payments[0].Status)

	stored := f.payments.payments[payment.ID]
	assert.Equal(t, entity.PaymentStatusOverdue, stored.Status)
}

func TestRecordPayment(t *testing.T) {
	f := newPaymentFixture(t)
	payment := f.seedPayment(t, date(2026, time.April, 1))

	recorded, err := f.service.Record(context.Background(), testOrgID, payment.ID, dto.RecordPayment{
		PaymentMethod: "cash",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, recorded.Status)
	require.NotNil(t, recorded.PaidDate)
	assert.Equal(t, f.clock.Now(), *recorded.PaidDate)
}

func TestRecordPaymentTwiceRejected(t *testing.T) {
	f := newPaymentFixture(t)
	payment := f.seedPayment(t, date(2026, time.April, 1))

	_, err := f.service.Record(context.Background(), testOrgID, payment.ID, dto.RecordPayment{PaymentMethod: "cash"})
	require.NoError(t, err)

	_, err = f.service.Record(context.Background(), testOrgID, payment.ID, dto.RecordPayment{PaymentMethod: "card"})

	require.Error(t, err)
	assert.Equal(t, errorz.KindBadRequest, errorz.KindOf(err))
}

func TestDeletePaidPaymentRejected(t *testing.T) {
	f := newPaymentFixture(t)
	payment := f.seedPayment(t, date(2026, time.April, 1))
	_, err := f.service.Record(context.Background(), testOrgID, payment.ID, dto.RecordPayment{PaymentMethod: "cash"})
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), testOrgID, payment.ID)

	require.Error(t, err)
	assert.Equal(t, errorz.KindBadRequest, errorz.KindOf(err))
}

func TestUpdatePaidPaymentRejected(t *testing.T) {
	f := newPaymentFixture(t)
	payment := f.seedPayment(t, date(2026, time.April, 1))
	_, err := f.service.Record(context.Background(), testOrgID, payment.ID, dto.RecordPayment{PaymentMethod: "cash"})
	require.NoError(t, err)

	amount := 60.0
	_, err = f.service.Update(context.Background(), testOrgID, payment.ID, dto.UpdatePayment{Amount: &amount})

	require.Error(t, err)
	assert.Equal(t, errorz.KindBadRequest, errorz.KindOf(err))
}
