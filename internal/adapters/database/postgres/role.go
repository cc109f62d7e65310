package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type RoleStorage struct {
	db *gorm.DB
}

func NewRoleStorage(db *gorm.DB) *RoleStorage {
	return &RoleStorage{
		db: db,
	}
}

// Get is a function that gets a role from the database by id.
func (s *RoleStorage) Get(ctx context.Context, id string) (*entity.Role, error) {
	var role entity.Role
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&role).Error
	return &role, err
}

// GetByName is a function that gets a role of an organization by name.
func (s *RoleStorage) GetByName(ctx context.Context, organizationID, name string) (*entity.Role, error) {
	var role entity.Role
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND name = ?", organizationID, name).
		First(&role).Error
	return &role, err
}

// ListByOrganization is a function that gets all roles of an organization.
func (s *RoleStorage) ListByOrganization(ctx context.Context, organizationID string) ([]entity.Role, error) {
	var roles []entity.Role
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("name").
		Find(&roles).Error
	return roles, err
}

// Create is a function that creates a new role in the database.
func (s *RoleStorage) Create(ctx context.Context, role *entity.Role) (*entity.Role, error) {
	err := s.db.WithContext(ctx).Create(&role).Error
	return role, err
}

// Update is a function that updates a role in the database.
func (s *RoleStorage) Update(ctx context.Context, role *entity.Role) (*entity.Role, error) {
	err := s.db.WithContext(ctx).Save(&role).Error
	return role, err
}

// Delete is a function that removes a role from the database.
func (s *RoleStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&entity.Role{}, "id = ?", id).Error
}

// MembershipCount counts how many memberships still hold the role.
func (s *RoleStorage) MembershipCount(ctx context.Context, roleID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.UserOrganization{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	return count, err
}
