package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type MembershipStorage struct {
	db *gorm.DB
}

func NewMembershipStorage(db *gorm.DB) *MembershipStorage {
	return &MembershipStorage{
		db: db,
	}
}

// GetByUser is a function that gets all memberships of a user with their
// organization and role preloaded.
func (s *MembershipStorage) GetByUser(ctx context.Context, userID string) ([]entity.UserOrganization, error) {
	var memberships []entity.UserOrganization
	err := s.db.WithContext(ctx).
		Preload("Organization").
		Preload("Role").
		Where("user_id = ?", userID).
		Find(&memberships).Error
	return memberships, err
}

// GetByUserAndOrg is a function that gets a single membership.
func (s *MembershipStorage) GetByUserAndOrg(ctx context.Context, userID, organizationID string) (*entity.UserOrganization, error) {
	var membership entity.UserOrganization
	err := s.db.WithContext(ctx).
		Preload("Organization").
		Preload("Role").
		Preload("User").
		Where("user_id = ? AND organization_id = ?", userID, organizationID).
		First(&membership).Error
	return &membership, err
}

// ListByOrganization is a function that gets all memberships of an
// organization with users and roles preloaded.
func (s *MembershipStorage) ListByOrganization(ctx context.Context, organizationID string) ([]entity.UserOrganization, error) {
	var memberships []entity.UserOrganization
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Role").
		Where("organization_id = ?", organizationID).
		Find(&memberships).Error
	return memberships, err
}

// CountByOrganization is a function that counts the members of an organization.
func (s *MembershipStorage) CountByOrganization(ctx context.Context, organizationID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.UserOrganization{}).
		Where("organization_id = ?", organizationID).
		Count(&count).Error
	return count, err
}

// SetDefault marks one membership as the user's default and clears the flag
// on all others in one transaction.
func (s *MembershipStorage) SetDefault(ctx context.Context, userID, organizationID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.UserOrganization{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&entity.UserOrganization{}).
			Where("user_id = ? AND organization_id = ?", userID, organizationID).
			Update("is_default", true).Error
	})
}

// UpdateRole is a function that changes the role of a membership.
func (s *MembershipStorage) UpdateRole(ctx context.Context, membershipID, roleID string) error {
	return s.db.WithContext(ctx).
		Model(&entity.UserOrganization{}).
		Where("id = ?", membershipID).
		Update("role_id", roleID).Error
}

// Delete is a function that removes a membership from the database.
func (s *MembershipStorage) Delete(ctx context.Context, membershipID string) error {
	return s.db.WithContext(ctx).Delete(&entity.UserOrganization{}, "id = ?", membershipID).Error
}

// SwapRoles reassigns two memberships' roles atomically; used for ownership
// transfer.
func (s *MembershipStorage) SwapRoles(ctx context.Context, fromMembershipID, fromRoleID, toMembershipID, toRoleID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.UserOrganization{}).
			Where("id = ?", fromMembershipID).
			Update("role_id", fromRoleID).Error; err != nil {
			return err
		}
		return tx.Model(&entity.UserOrganization{}).
			Where("id = ?", toMembershipID).
			Update("role_id", toRoleID).Error
	})
}
