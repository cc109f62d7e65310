package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type AuditStorage struct {
	db *gorm.DB
}

func NewAuditStorage(db *gorm.DB) *AuditStorage {
	return &AuditStorage{
		db: db,
	}
}

// Create is a function that appends an audit log row.
func (s *AuditStorage) Create(ctx context.Context, log *entity.AuditLog) error {
	return s.db.WithContext(ctx).Create(&log).Error
}

// List is a function that gets the newest audit log rows of an organization.
func (s *AuditStorage) List(ctx context.Context, organizationID string, limit int) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
