package service

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type paymentStorage interface {
	Create(ctx context.Context, payment *entity.Payment) (*entity.Payment, error)
	Get(ctx context.Context, organizationID, id string) (*entity.Payment, error)
	List(ctx context.Context, organizationID string, filter dto.PaymentFilter) ([]entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) (*entity.Payment, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, organizationID string) (*dto.PaymentSummary, error)
}

type paymentTypeStorage interface {
	Get(ctx context.Context, organizationID, id string) (*entity.PaymentType, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]entity.PaymentType, error)
}

type paymentAthleteStorage interface {
	Get(ctx context.Context, organizationID, id string) (*entity.Athlete, error)
}

type PaymentService struct {
	payments     paymentStorage
	paymentTypes paymentTypeStorage
	athletes     paymentAthleteStorage
	clock        clockwork.Clock
}

func NewPaymentService(payments paymentStorage, paymentTypes paymentTypeStorage, athletes paymentAthleteStorage, clock clockwork.Clock) *PaymentService {
	return &PaymentService{
		payments:     payments,
		paymentTypes: paymentTypes,
		athletes:     athletes,
		clock:        clock,
	}
}

// Create stores a payment against an athlete. A due date already in the past
// makes the payment start out overdue.
func (s *PaymentService) Create(ctx context.Context, organizationID string, data dto.CreatePayment) (*entity.Payment, error) {
	if _, err := s.athletes.Get(ctx, organizationID, data.AthleteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("ATHLETE_NOT_FOUND", "athlete not found")
		}
		return nil, err
	}
	if _, err := s.paymentTypes.Get(ctx, organizationID, data.PaymentTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("PAYMENT_TYPE_NOT_FOUND", "payment type not found")
		}
		return nil, err
	}

	status := entity.PaymentStatusPending
	if data.DueDate.Before(s.clock.Now()) {
		status = entity.PaymentStatusOverdue
	}

	return s.payments.Create(ctx, &entity.Payment{
		AthleteID:     data.AthleteID,
		PaymentTypeID: data.PaymentTypeID,
		Amount:        data.Amount,
		DueDate:       data.DueDate,
		Status:        status,
		Period:        data.Period,
		Notes:         data.Notes,
	})
}

func (s *PaymentService) Get(ctx context.Context, organizationID, id string) (*entity.Payment, error) {
	payment, err := s.payments.Get(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("PAYMENT_NOT_FOUND", "payment not found")
		}
		return nil, err
	}
	return payment, nil
}

// List returns payments, flipping pending rows past their due date to
// overdue on the way out.
func (s *PaymentService) List(ctx context.Context, organizationID string, filter dto.PaymentFilter) ([]entity.Payment, error) {
	payments, err := s.payments.List(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	for i := range payments {
		p := &payments[i]
		if p.Status == entity.PaymentStatusPending && p.DueDate.Before(now) {
			p.Status = entity.PaymentStatusOverdue
			if _, err = s.payments.Update(ctx, p); err != nil {
				return nil, err
			}
		}
	}
	return payments, nil
}

func (s *PaymentService) Update(ctx context.Context, organizationID, id string, data dto.UpdatePayment) (*entity.Payment, error) {
	payment, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if payment.Status == entity.PaymentStatusPaid {
		return nil, errorz.BadRequest("PAYMENT_PAID", "paid payments cannot be modified")
	}
	if data.Amount != nil {
		payment.Amount = *data.Amount
	}
	if data.DueDate != nil {
		payment.DueDate = *data.DueDate
		if payment.DueDate.Before(s.clock.Now()) {
			payment.Status = entity.PaymentStatusOverdue
		} else {
			payment.Status = entity.PaymentStatusPending
		}
	}
	if data.Period != nil {
		payment.Period = *data.Period
	}
	if data.Notes != nil {
		payment.Notes = *data.Notes
	}
	return s.payments.Update(ctx, payment)
}

// Record marks a payment as paid with the method and date of settlement.
func (s *PaymentService) Record(ctx context.Context, organizationID, id string, data dto.RecordPayment) (*entity.Payment, error) {
	payment, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if payment.Status == entity.PaymentStatusPaid {
		return nil, errorz.BadRequest("PAYMENT_PAID", "payment is already paid")
	}
	paidDate := s.clock.Now()
	if data.PaidDate != nil {
		paidDate = *data.PaidDate
	}
	payment.Status = entity.PaymentStatusPaid
	payment.PaidDate = &paidDate
	payment.PaymentMethod = data.PaymentMethod
	return s.payments.Update(ctx, payment)
}

// Delete removes a payment. Paid payments are kept for the books and cannot
// be deleted.
func (s *PaymentService) Delete(ctx context.Context, organizationID, id string) error {
	payment, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if payment.Status == entity.PaymentStatusPaid {
		return errorz.BadRequest("PAYMENT_PAID", "cannot delete a paid payment")
	}
	return s.payments.Delete(ctx, id)
}

func (s *PaymentService) Summary(ctx context.Context, organizationID string) (*dto.PaymentSummary, error) {
	return s.payments.Summary(ctx, organizationID)
}

func (s *PaymentService) ListTypes(ctx context.Context, organizationID string) ([]entity.PaymentType, error) {
	return s.paymentTypes.ListByOrganization(ctx, organizationID)
}
