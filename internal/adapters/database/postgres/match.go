package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type MatchStorage struct {
	db *gorm.DB
}

func NewMatchStorage(db *gorm.DB) *MatchStorage {
	return &MatchStorage{
		db: db,
	}
}

// Create is a function that creates a new match in the database.
func (s *MatchStorage) Create(ctx context.Context, match *entity.Match) (*entity.Match, error) {
	err := s.db.WithContext(ctx).Create(&match).Error
	return match, err
}

// Get is a function that gets a match of an organization by id with teams and
// roster preloaded.
func (s *MatchStorage) Get(ctx context.Context, organizationID, id string) (*entity.Match, error) {
	var match entity.Match
	err := s.db.WithContext(ctx).
		Preload("HomeTeam").
		Preload("AwayTeam").
		Preload("Roster.Athlete").
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&match).Error
	return &match, err
}

// List returns matches of an organization narrowed by the filter, upcoming
// matches first.
func (s *MatchStorage) List(ctx context.Context, organizationID string, filter dto.MatchFilter) ([]entity.Match, error) {
	query := s.db.WithContext(ctx).
		Preload("HomeTeam").
		Preload("AwayTeam").
		Where("organization_id = ?", organizationID)

	if filter.TeamID != "" {
		query = query.Where(s.db.Where("home_team_id = ?", filter.TeamID).Or("away_team_id = ?", filter.TeamID))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Season != "" {
		query = query.Where("season = ?", filter.Season)
	}
	if filter.Upcoming {
		query = query.Where("date >= now() AND status = ?", entity.MatchStatusScheduled)
	}

	var matches []entity.Match
	err := query.Order("date").Find(&matches).Error
	return matches, err
}

// ScheduledBetween gets scheduled matches of an organization inside a date
// window, with teams preloaded.
func (s *MatchStorage) ScheduledBetween(ctx context.Context, organizationID string, from, to time.Time) ([]entity.Match, error) {
	var matches []entity.Match
	err := s.db.WithContext(ctx).
		Preload("HomeTeam").
		Preload("AwayTeam").
		Where("organization_id = ? AND status = ? AND date >= ? AND date < ?",
			organizationID, entity.MatchStatusScheduled, from, to).
		Find(&matches).Error
	return matches, err
}

// Update is a function that updates a match in the database.
func (s *MatchStorage) Update(ctx context.Context, match *entity.Match) (*entity.Match, error) {
	err := s.db.WithContext(ctx).Omit("Roster", "HomeTeam", "AwayTeam", "Organization").Save(&match).Error
	return match, err
}

// Delete removes a match and its roster entries in one transaction.
func (s *MatchStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.MatchRosterEntry{}, "match_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Match{}, "id = ?", id).Error
	})
}

// ReplaceRoster swaps all roster entries of a match in one transaction.
func (s *MatchStorage) ReplaceRoster(ctx context.Context, matchID string, entries []entity.MatchRosterEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.MatchRosterEntry{}, "match_id = ?", matchID).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// UpdateRosterStats writes per-athlete stats of a match in one transaction.
func (s *MatchStorage) UpdateRosterStats(ctx context.Context, matchID string, stats []dto.AthleteStats) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stat := range stats {
			err := tx.Model(&entity.MatchRosterEntry{}).
				Where("match_id = ? AND athlete_id = ?", matchID, stat.AthleteID).
				Updates(map[string]interface{}{
					"minutes_played": stat.MinutesPlayed,
					"goals":          stat.Goals,
					"assists":        stat.Assists,
					"yellow_cards":   stat.YellowCards,
					"red_cards":      stat.RedCards,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
