package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type PaymentStorage struct {
	db *gorm.DB
}

func NewPaymentStorage(db *gorm.DB) *PaymentStorage {
	return &PaymentStorage{
		db: db,
	}
}

// Payments carry no organization column; tenancy comes from the athlete row.
func (s *PaymentStorage) scoped(ctx context.Context, organizationID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&entity.Payment{}).
		Joins("JOIN athletes ON athletes.id = payments.athlete_id").
		Where("athletes.organization_id = ?", organizationID)
}

// Create is a function that creates a new payment in the database.
func (s *PaymentStorage) Create(ctx context.Context, payment *entity.Payment) (*entity.Payment, error) {
	err := s.db.WithContext(ctx).Create(&payment).Error
	return payment, err
}

// Get is a function that gets a payment of an organization by id.
func (s *PaymentStorage) Get(ctx context.Context, organizationID, id string) (*entity.Payment, error) {
	var payment entity.Payment
	err := s.scoped(ctx, organizationID).
		Preload("Athlete").
		Preload("PaymentType").
		Where("payments.id = ?", id).
		First(&payment).Error
	return &payment, err
}

// List returns payments of an organization narrowed by the filter.
func (s *PaymentStorage) List(ctx context.Context, organizationID string, filter dto.PaymentFilter) ([]entity.Payment, error) {
	query := s.scoped(ctx, organizationID).
		Preload("Athlete").
		Preload("PaymentType")

	if filter.AthleteID != "" {
		query = query.Where("payments.athlete_id = ?", filter.AthleteID)
	}
	if filter.Status != "" {
		query = query.Where("payments.status = ?", filter.Status)
	}
	if filter.Overdue {
		query = query.Where("payments.status <> ? AND payments.due_date < now()", entity.PaymentStatusPaid)
	}

	var payments []entity.Payment
	err := query.Order("payments.due_date").Find(&payments).Error
	return payments, err
}

// Unpaid gets pending and overdue payments past their due date, with the
// athlete preloaded.
func (s *PaymentStorage) Unpaid(ctx context.Context, organizationID string, dueBefore time.Time) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := s.scoped(ctx, organizationID).
		Preload("Athlete").
		Where("payments.status IN ? AND payments.due_date < ?",
			[]entity.PaymentStatus{entity.PaymentStatusPending, entity.PaymentStatusOverdue}, dueBefore).
		Find(&payments).Error
	return payments, err
}

// Update is a function that updates a payment in the database.
func (s *PaymentStorage) Update(ctx context.Context, payment *entity.Payment) (*entity.Payment, error) {
	err := s.db.WithContext(ctx).Omit("Athlete", "PaymentType").Save(&payment).Error
	return payment, err
}

// Delete is a function that removes a payment from the database.
func (s *PaymentStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&entity.Payment{}, "id = ?", id).Error
}

// Summary aggregates amounts and counts per payment status for an
// organization in a single query.
func (s *PaymentStorage) Summary(ctx context.Context, organizationID string) (*dto.PaymentSummary, error) {
	var rows []struct {
		Status entity.PaymentStatus
		Total  float64
		Count  int
	}
	err := s.scoped(ctx, organizationID).
		Select("payments.status AS status, COALESCE(SUM(payments.amount), 0) AS total, COUNT(*) AS count").
		Group("payments.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &dto.PaymentSummary{}
	for _, row := range rows {
		summary.TotalAmount += row.Total
		switch row.Status {
		case entity.PaymentStatusPaid:
			summary.PaidAmount = row.Total
			summary.PaidCount = row.Count
		case entity.PaymentStatusPending:
			summary.PendingAmount = row.Total
			summary.PendingCount = row.Count
		case entity.PaymentStatusOverdue:
			summary.OverdueAmount = row.Total
			summary.OverdueCount = row.Count
		}
	}
	return summary, nil
}
