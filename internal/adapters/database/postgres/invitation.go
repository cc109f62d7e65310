package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type InvitationStorage struct {
	db *gorm.DB
}

func NewInvitationStorage(db *gorm.DB) *InvitationStorage {
	return &InvitationStorage{
		db: db,
	}
}

// Create is a function that creates a new invitation in the database.
func (s *InvitationStorage) Create(ctx context.Context, invitation *entity.OrganizationInvitation) (*entity.OrganizationInvitation, error) {
	err := s.db.WithContext(ctx).Create(&invitation).Error
	return invitation, err
}

// GetByToken is a function that gets an invitation by its token with the
// organization and role preloaded.
func (s *InvitationStorage) GetByToken(ctx context.Context, token string) (*entity.OrganizationInvitation, error) {
	var invitation entity.OrganizationInvitation
	err := s.db.WithContext(ctx).
		Preload("Organization").
		Preload("Role").
		Where("token = ?", token).
		First(&invitation).Error
	return &invitation, err
}

// MarkAccepted stamps the invitation as redeemed.
func (s *InvitationStorage) MarkAccepted(ctx context.Context, id string, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&entity.OrganizationInvitation{}).
		Where("id = ?", id).
		Update("accepted_at", at).Error
}

// HasPending reports whether an unexpired, unaccepted invitation already
// exists for the email in the organization.
func (s *InvitationStorage) HasPending(ctx context.Context, organizationID, email string, now time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.OrganizationInvitation{}).
		Where("organization_id = ? AND lower(email) = lower(?) AND accepted_at IS NULL AND expires_at > ?", organizationID, email, now).
		Count(&count).Error
	return count > 0, err
}
