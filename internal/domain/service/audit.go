package service

import (
	"context"

	"github.com/241luca/soccer-manager/internal/domain/entity"
	"github.com/241luca/soccer-manager/pkg/logger"
)

type auditStorage interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, organizationID string, limit int) ([]entity.AuditLog, error)
}

type AuditService struct {
	audits auditStorage
	logger *logger.Logger
}

func NewAuditService(audits auditStorage, log *logger.Logger) *AuditService {
	return &AuditService{audits: audits, logger: log}
}

// Record appends an audit row. Auditing never fails the request that caused
// it; storage errors are logged and dropped.
func (s *AuditService) Record(ctx context.Context, organizationID, userID, action, entityType, entityID, details string) {
	err := s.audits.Create(ctx, &entity.AuditLog{
		OrganizationID: organizationID,
		UserID:         userID,
		Action:         action,
		EntityType:     entityType,
		EntityID:       entityID,
		Details:        details,
	})
	if err != nil {
		s.logger.Errorf("failed to write audit log: %v", err)
	}
}

func (s *AuditService) List(ctx context.Context, organizationID string, limit int) ([]entity.AuditLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.audits.List(ctx, organizationID, limit)
}
