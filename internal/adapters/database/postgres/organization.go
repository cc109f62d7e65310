package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/entity"
	"github.com/241luca/soccer-manager/internal/domain/service"
)

type OrganizationStorage struct {
	db *gorm.DB
}

func NewOrganizationStorage(db *gorm.DB) *OrganizationStorage {
	return &OrganizationStorage{
		db: db,
	}
}

// Get is a function that gets an organization from the database by id.
func (s *OrganizationStorage) Get(ctx context.Context, id string) (*entity.Organization, error) {
	var org entity.Organization
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&org).Error
	return &org, err
}

// Update is a function that updates an organization in the database.
func (s *OrganizationStorage) Update(ctx context.Context, org *entity.Organization) (*entity.Organization, error) {
	err := s.db.WithContext(ctx).Save(&org).Error
	return org, err
}

// SubdomainTaken reports whether an organization already uses the subdomain.
func (s *OrganizationStorage) SubdomainTaken(ctx context.Context, subdomain string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.Organization{}).
		Where("subdomain = ?", subdomain).
		Count(&count).Error
	return count > 0, err
}

// ListActiveIDs is a function that gets the ids of all active organizations.
func (s *OrganizationStorage) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Model(&entity.Organization{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error
	return ids, err
}

// Provision creates a new organization with its system roles, default
// document and payment types, the owner account and the owner membership in
// one transaction.
func (s *OrganizationStorage) Provision(ctx context.Context, bootstrap *service.OrganizationBootstrap) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bootstrap.Organization).Error; err != nil {
			return err
		}
		orgID := bootstrap.Organization.ID

		for i := range bootstrap.Roles {
			bootstrap.Roles[i].OrganizationID = orgID
		}
		if err := tx.Create(&bootstrap.Roles).Error; err != nil {
			return err
		}

		for i := range bootstrap.DocumentTypes {
			bootstrap.DocumentTypes[i].OrganizationID = orgID
		}
		if err := tx.Create(&bootstrap.DocumentTypes).Error; err != nil {
			return err
		}

		for i := range bootstrap.PaymentTypes {
			bootstrap.PaymentTypes[i].OrganizationID = orgID
		}
		if err := tx.Create(&bootstrap.PaymentTypes).Error; err != nil {
			return err
		}

		if err := tx.Create(bootstrap.Owner).Error; err != nil {
			return err
		}

		var ownerRoleID string
		for _, role := range bootstrap.Roles {
			if role.Name == "Owner" {
				ownerRoleID = role.ID
			}
		}

		return tx.Create(&entity.UserOrganization{
			UserID:         bootstrap.Owner.ID,
			OrganizationID: orgID,
			RoleID:         ownerRoleID,
			IsDefault:      true,
		}).Error
	})
}
