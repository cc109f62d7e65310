package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type AthleteStorage struct {
	db *gorm.DB
}

func NewAthleteStorage(db *gorm.DB) *AthleteStorage {
	return &AthleteStorage{
		db: db,
	}
}

// Create is a function that creates a new athlete in the database.
func (s *AthleteStorage) Create(ctx context.Context, athlete *entity.Athlete) (*entity.Athlete, error) {
	err := s.db.WithContext(ctx).Create(&athlete).Error
	return athlete, err
}

// Get is a function that gets an athlete of an organization by id.
func (s *AthleteStorage) Get(ctx context.Context, organizationID, id string) (*entity.Athlete, error) {
	var athlete entity.Athlete
	err := s.db.WithContext(ctx).
		Preload("Team").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&athlete).Error
	return &athlete, err
}

// List returns a filtered page of athletes together with the total count.
func (s *AthleteStorage) List(ctx context.Context, organizationID string, filter dto.AthleteFilter) ([]entity.Athlete, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&entity.Athlete{}).
		Where("organization_id = ?", organizationID)

	if filter.TeamID != "" {
		query = query.Where("team_id = ?", filter.TeamID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.NeedsPromotion != nil {
		query = query.Where("needs_promotion = ?", *filter.NeedsPromotion)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ? OR fiscal_code ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var athletes []entity.Athlete
	err := query.
		Preload("Team").
		Order("last_name, first_name").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&athletes).Error
	return athletes, total, err
}

// ListByTeam is a function that gets all athletes assigned to a team.
func (s *AthleteStorage) ListByTeam(ctx context.Context, teamID string) ([]entity.Athlete, error) {
	var athletes []entity.Athlete
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("jersey_number").
		Find(&athletes).Error
	return athletes, err
}

// Update is a function that updates an athlete in the database.
func (s *AthleteStorage) Update(ctx context.Context, athlete *entity.Athlete) (*entity.Athlete, error) {
	err := s.db.WithContext(ctx).Save(&athlete).Error
	return athlete, err
}

// Delete is a function that removes an athlete from the database.
func (s *AthleteStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&entity.Athlete{}, "id = ?", id).Error
}

// UnassignTeam clears the team of every athlete assigned to it.
func (s *AthleteStorage) UnassignTeam(ctx context.Context, teamID string) error {
	return s.db.WithContext(ctx).
		Model(&entity.Athlete{}).
		Where("team_id = ?", teamID).
		Updates(map[string]interface{}{"team_id": nil, "needs_promotion": false}).Error
}

// FiscalCodeTaken reports whether another athlete of the organization already
// uses the fiscal code.
func (s *AthleteStorage) FiscalCodeTaken(ctx context.Context, organizationID, fiscalCode, excludeID string) (bool, error) {
	query := s.db.WithContext(ctx).
		Model(&entity.Athlete{}).
		Where("organization_id = ? AND fiscal_code = ?", organizationID, fiscalCode)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// JerseyTaken reports whether another athlete of the team already wears the
// jersey number.
func (s *AthleteStorage) JerseyTaken(ctx context.Context, teamID string, number int, excludeID string) (bool, error) {
	query := s.db.WithContext(ctx).
		Model(&entity.Athlete{}).
		Where("team_id = ? AND jersey_number = ?", teamID, number)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}
