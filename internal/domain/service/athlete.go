package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type athleteStorage interface {
	Create(ctx context.Context, athlete *entity.Athlete) (*entity.Athlete, error)
	Get(ctx context.Context, organizationID, id string) (*entity.Athlete, error)
	List(ctx context.Context, organizationID string, filter dto.AthleteFilter) ([]entity.Athlete, int64, error)
	Update(ctx context.Context, athlete *entity.Athlete) (*entity.Athlete, error)
	Delete(ctx context.Context, id string) error
	FiscalCodeTaken(ctx context.Context, organizationID, fiscalCode, excludeID string) (bool, error)
	JerseyTaken(ctx context.Context, teamID string, number int, excludeID string) (bool, error)
}

type athleteTeamStorage interface {
	Get(ctx context.Context, organizationID, id string) (*entity.Team, error)
}

// notifier lets domain services emit notifications without depending on the
// notification service directly.
type notifier interface {
	Notify(ctx context.Context, organizationID string, data dto.CreateNotification)
}

type AthleteService struct {
	athletes athleteStorage
	teams    athleteTeamStorage
	notify   notifier
	clock    clockwork.Clock
}

func NewAthleteService(athletes athleteStorage, teams athleteTeamStorage, notify notifier, clock clockwork.Clock) *AthleteService {
	return &AthleteService{
		athletes: athletes,
		teams:    teams,
		notify:   notify,
		clock:    clock,
	}
}

func (s *AthleteService) Get(ctx context.Context, organizationID, id string) (*entity.Athlete, error) {
	athlete, err := s.athletes.Get(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("ATHLETE_NOT_FOUND", "athlete not found")
		}
		return nil, err
	}
	return athlete, nil
}

func (s *AthleteService) List(ctx context.Context, organizationID string, filter dto.AthleteFilter) ([]entity.Athlete, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.athletes.List(ctx, organizationID, filter)
}

// Create validates team ownership and the fiscal-code/jersey uniqueness
// rules, then stores the athlete. An age outside the team bracket only flags
// the athlete for promotion.
func (s *AthleteService) Create(ctx context.Context, organizationID string, data dto.CreateAthlete) (*entity.Athlete, error) {
	athlete := &entity.Athlete{
		OrganizationID: organizationID,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		BirthDate:      data.BirthDate,
		FiscalCode:     data.FiscalCode,
		JerseyNumber:   data.JerseyNumber,
		Position:       data.Position,
		Status:         entity.AthleteStatusActive,
		GuardianName:   data.GuardianName,
		GuardianPhone:  data.GuardianPhone,
		Email:          data.Email,
		Phone:          data.Phone,
		Address:        data.Address,
		Notes:          data.Notes,
	}

	if data.FiscalCode != "" {
		taken, err := s.athletes.FiscalCodeTaken(ctx, organizationID, data.FiscalCode, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errorz.Conflict("FISCAL_CODE_TAKEN", "an athlete with this fiscal code already exists")
		}
	}

	if data.TeamID != "" {
		team, err := s.validateTeam(ctx, organizationID, data.TeamID, data.JerseyNumber, "")
		if err != nil {
			return nil, err
		}
		athlete.TeamID = &data.TeamID
		athlete.NeedsPromotion = s.outsideBracket(athlete, team)
	}

	created, err := s.athletes.Create(ctx, athlete)
	if err != nil {
		return nil, err
	}
	if created.NeedsPromotion {
		s.emitPromotionNotice(ctx, created)
	}
	return created, nil
}

func (s *AthleteService) Update(ctx context.Context, organizationID, id string, data dto.UpdateAthlete) (*entity.Athlete, error) {
	athlete, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	if data.FiscalCode != nil && *data.FiscalCode != athlete.FiscalCode {
		taken, err := s.athletes.FiscalCodeTaken(ctx, organizationID, *data.FiscalCode, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errorz.Conflict("FISCAL_CODE_TAKEN", "an athlete with this fiscal code already exists")
		}
		athlete.FiscalCode = *data.FiscalCode
	}

	if data.FirstName != nil {
		athlete.FirstName = *data.FirstName
	}
	if data.LastName != nil {
		athlete.LastName = *data.LastName
	}
	if data.BirthDate != nil {
		athlete.BirthDate = *data.BirthDate
	}
	if data.Position != nil {
		athlete.Position = *data.Position
	}
	if data.Status != nil {
		athlete.Status = entity.AthleteStatus(*data.Status)
	}
	if data.GuardianName != nil {
		athlete.GuardianName = *data.GuardianName
	}
	if data.GuardianPhone != nil {
		athlete.GuardianPhone = *data.GuardianPhone
	}
	if data.Email != nil {
		athlete.Email = *data.Email
	}
	if data.Phone != nil {
		athlete.Phone = *data.Phone
	}
	if data.Address != nil {
		athlete.Address = *data.Address
	}
	if data.Notes != nil {
		athlete.Notes = *data.Notes
	}

	teamID := athlete.TeamID
	if data.TeamID != nil {
		if *data.TeamID == "" {
			teamID = nil
		} else {
			teamID = data.TeamID
		}
	}
	jersey := athlete.JerseyNumber
	if data.JerseyNumber != nil {
		jersey = data.JerseyNumber
	}

	teamChanged := !equalPtr(teamID, athlete.TeamID)
	jerseyChanged := !equalIntPtr(jersey, athlete.JerseyNumber)

	if teamID != nil && (teamChanged || jerseyChanged || data.BirthDate != nil) {
		team, err := s.validateTeam(ctx, organizationID, *teamID, jersey, id)
		if err != nil {
			return nil, err
		}
		athlete.TeamID = teamID
		athlete.JerseyNumber = jersey
		wasFlagged := athlete.NeedsPromotion
		athlete.NeedsPromotion = s.outsideBracket(athlete, team)
		if athlete.NeedsPromotion && !wasFlagged {
			s.emitPromotionNotice(ctx, athlete)
		}
	} else {
		athlete.TeamID = teamID
		athlete.JerseyNumber = jersey
		if teamID == nil {
			athlete.NeedsPromotion = false
		}
	}

	return s.athletes.Update(ctx, athlete)
}

func (s *AthleteService) Delete(ctx context.Context, organizationID, id string) error {
	if _, err := s.Get(ctx, organizationID, id); err != nil {
		return err
	}
	return s.athletes.Delete(ctx, id)
}

func (s *AthleteService) validateTeam(ctx context.Context, organizationID, teamID string, jersey *int, excludeAthleteID string) (*entity.Team, error) {
	team, err := s.teams.Get(ctx, organizationID, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("TEAM_NOT_FOUND", "team not found")
		}
		return nil, err
	}
	if jersey != nil {
		taken, err := s.athletes.JerseyTaken(ctx, teamID, *jersey, excludeAthleteID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errorz.Conflict("JERSEY_TAKEN", "jersey number already taken in this team")
		}
	}
	return team, nil
}

func (s *AthleteService) outsideBracket(athlete *entity.Athlete, team *entity.Team) bool {
	age := athlete.Age(s.clock.Now())
	return age < team.MinAge || age > team.MaxAge
}

func (s *AthleteService) emitPromotionNotice(ctx context.Context, athlete *entity.Athlete) {
	s.notify.Notify(ctx, athlete.OrganizationID, dto.CreateNotification{
		Type:              string(entity.NotificationTypeAthletePromotion),
		Severity:          string(entity.SeverityWarning),
		Title:             "Athlete outside team age bracket",
		Message:           fmt.Sprintf("%s %s is outside the age bracket of the assigned team", athlete.FirstName, athlete.LastName),
		RelatedEntityType: "athlete",
		RelatedEntityID:   athlete.ID,
	})
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
