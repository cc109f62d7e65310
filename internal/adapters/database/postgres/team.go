package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type TeamStorage struct {
	db *gorm.DB
}

func NewTeamStorage(db *gorm.DB) *TeamStorage {
	return &TeamStorage{
		db: db,
	}
}

// Create is a function that creates a new team in the database.
func (s *TeamStorage) Create(ctx context.Context, team *entity.Team) (*entity.Team, error) {
	err := s.db.WithContext(ctx).Create(&team).Error
	return team, err
}

// Get is a function that gets a team of an organization by id.
func (s *TeamStorage) Get(ctx context.Context, organizationID, id string) (*entity.Team, error) {
	var team entity.Team
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&team).Error
	return &team, err
}

// ListByOrganization is a function that gets all teams of an organization.
func (s *TeamStorage) ListByOrganization(ctx context.Context, organizationID string) ([]entity.Team, error) {
	var teams []entity.Team
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("name").
		Find(&teams).Error
	return teams, err
}

// Update is a function that updates a team in the database.
func (s *TeamStorage) Update(ctx context.Context, team *entity.Team) (*entity.Team, error) {
	err := s.db.WithContext(ctx).Save(&team).Error
	return team, err
}

// Delete is a function that removes a team from the database.
func (s *TeamStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&entity.Team{}, "id = ?", id).Error
}
