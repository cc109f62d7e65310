package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type PaymentTypeStorage struct {
	db *gorm.DB
}

func NewPaymentTypeStorage(db *gorm.DB) *PaymentTypeStorage {
	return &PaymentTypeStorage{
		db: db,
	}
}

// Get is a function that gets a payment type of an organization by id.
func (s *PaymentTypeStorage) Get(ctx context.Context, organizationID, id string) (*entity.PaymentType, error) {
	var paymentType entity.PaymentType
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&paymentType).Error
	return &paymentType, err
}

// ListByOrganization is a function that gets all payment types of an
// organization.
func (s *PaymentTypeStorage) ListByOrganization(ctx context.Context, organizationID string) ([]entity.PaymentType, error) {
	var paymentTypes []entity.PaymentType
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("name").
		Find(&paymentTypes).Error
	return paymentTypes, err
}
