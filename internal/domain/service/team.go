package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type teamStorage interface {
	Create(ctx context.Context, team *entity.Team) (*entity.Team, error)
	Get(ctx context.Context, organizationID, id string) (*entity.Team, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]entity.Team, error)
	Update(ctx context.Context, team *entity.Team) (*entity.Team, error)
	Delete(ctx context.Context, id string) error
}

type teamAthleteStorage interface {
	ListByTeam(ctx context.Context, teamID string) ([]entity.Athlete, error)
	UnassignTeam(ctx context.Context, teamID string) error
}

type TeamService struct {
	teams    teamStorage
	athletes teamAthleteStorage
}

func NewTeamService(teams teamStorage, athletes teamAthleteStorage) *TeamService {
	return &TeamService{
		teams:    teams,
		athletes: athletes,
	}
}

func (s *TeamService) Create(ctx context.Context, organizationID string, data dto.CreateTeam) (*entity.Team, error) {
	if data.MinAge > data.MaxAge {
		return nil, errorz.BadRequest("INVALID_AGE_BRACKET", "minimum age cannot exceed maximum age")
	}
	return s.teams.Create(ctx, &entity.Team{
		OrganizationID: organizationID,
		Name:           data.Name,
		Category:       data.Category,
		MinAge:         data.MinAge,
		MaxAge:         data.MaxAge,
		Season:         data.Season,
		CoachName:      data.CoachName,
	})
}

func (s *TeamService) Get(ctx context.Context, organizationID, id string) (*entity.Team, error) {
	team, err := s.teams.Get(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("TEAM_NOT_FOUND", "team not found")
		}
		return nil, err
	}
	return team, nil
}

func (s *TeamService) List(ctx context.Context, organizationID string) ([]entity.Team, error) {
	return s.teams.ListByOrganization(ctx, organizationID)
}

func (s *TeamService) Update(ctx context.Context, organizationID, id string, data dto.UpdateTeam) (*entity.Team, error) {
	team, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if data.Name != nil {
		team.Name = *data.Name
	}
	if data.Category != nil {
		team.Category = *data.Category
	}
	if data.MinAge != nil {
		team.MinAge = *data.MinAge
	}
	if data.MaxAge != nil {
		team.MaxAge = *data.MaxAge
	}
	if team.MinAge > team.MaxAge {
		return nil, errorz.BadRequest("INVALID_AGE_BRACKET", "minimum age cannot exceed maximum age")
	}
	if data.Season != nil {
		team.Season = *data.Season
	}
	if data.CoachName != nil {
		team.CoachName = *data.CoachName
	}
	return s.teams.Update(ctx, team)
}

// Delete removes a team; athletes still assigned to it are unassigned first.
func (s *TeamService) Delete(ctx context.Context, organizationID, id string) error {
	if _, err := s.Get(ctx, organizationID, id); err != nil {
		return err
	}
	if err := s.athletes.UnassignTeam(ctx, id); err != nil {
		return err
	}
	return s.teams.Delete(ctx, id)
}

// Roster lists the athletes currently assigned to the team.
func (s *TeamService) Roster(ctx context.Context, organizationID, id string) ([]entity.Athlete, error) {
	if _, err := s.Get(ctx, organizationID, id); err != nil {
		return nil, err
	}
	return s.athletes.ListByTeam(ctx, id)
}
