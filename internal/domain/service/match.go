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

type matchStorage interface {
	Create(ctx context.Context, match *entity.Match) (*entity.Match, error)
	Get(ctx context.Context, organizationID, id string) (*entity.Match, error)
	List(ctx context.Context, organizationID string, filter dto.MatchFilter) ([]entity.Match, error)
	Update(ctx context.Context, match *entity.Match) (*entity.Match, error)
	Delete(ctx context.Context, id string) error
	ReplaceRoster(ctx context.Context, matchID string, entries []entity.MatchRosterEntry) error
	UpdateRosterStats(ctx context.Context, matchID string, stats []dto.AthleteStats) error
}

type matchTeamStorage interface {
	Get(ctx context.Context, organizationID, id string) (*entity.Team, error)
}

type matchAthleteStorage interface {
	Get(ctx context.Context, organizationID, id string) (*entity.Athlete, error)
}

type MatchService struct {
	matches  matchStorage
	teams    matchTeamStorage
	athletes matchAthleteStorage
	notify   notifier
	clock    clockwork.Clock
}

func NewMatchService(matches matchStorage, teams matchTeamStorage, athletes matchAthleteStorage, notify notifier, clock clockwork.Clock) *MatchService {
	return &MatchService{
		matches:  matches,
		teams:    teams,
		athletes: athletes,
		notify:   notify,
		clock:    clock,
	}
}

func (s *MatchService) Create(ctx context.Context, organizationID string, data dto.CreateMatch) (*entity.Match, error) {
	if _, err := s.teams.Get(ctx, organizationID, data.HomeTeamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("TEAM_NOT_FOUND", "home team not found")
		}
		return nil, err
	}

	match := &entity.Match{
		OrganizationID: organizationID,
		HomeTeamID:     data.HomeTeamID,
		AwayTeamName:   data.AwayTeamName,
		Date:           data.Date,
		Time:           data.Time,
		Venue:          data.Venue,
		Type:           entity.MatchType(data.Type),
		Status:         entity.MatchStatusScheduled,
		Season:         data.Season,
		Notes:          data.Notes,
	}
	if data.AwayTeamID != "" {
		if _, err := s.teams.Get(ctx, organizationID, data.AwayTeamID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorz.NotFound("TEAM_NOT_FOUND", "away team not found")
			}
			return nil, err
		}
		match.AwayTeamID = &data.AwayTeamID
	}
	if match.AwayTeamID == nil && match.AwayTeamName == "" {
		return nil, errorz.BadRequest("AWAY_TEAM_REQUIRED", "away team id or name required")
	}

	return s.matches.Create(ctx, match)
}

func (s *MatchService) Get(ctx context.Context, organizationID, id string) (*entity.Match, error) {
	match, err := s.matches.Get(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("MATCH_NOT_FOUND", "match not found")
		}
		return nil, err
	}
	return match, nil
}

func (s *MatchService) List(ctx context.Context, organizationID string, filter dto.MatchFilter) ([]entity.Match, error) {
	return s.matches.List(ctx, organizationID, filter)
}

func (s *MatchService) Update(ctx context.Context, organizationID, id string, data dto.UpdateMatch) (*entity.Match, error) {
	match, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if match.Status == entity.MatchStatusCompleted {
		return nil, errorz.BadRequest("MATCH_COMPLETED", "completed matches cannot be edited")
	}
	if data.Date != nil {
		match.Date = *data.Date
	}
	if data.Time != nil {
		match.Time = *data.Time
	}
	if data.Venue != nil {
		match.Venue = *data.Venue
	}
	if data.Season != nil {
		match.Season = *data.Season
	}
	if data.Notes != nil {
		match.Notes = *data.Notes
	}
	return s.matches.Update(ctx, match)
}

// UpdateStatus moves a match through its lifecycle. Transitions are checked
// against the static table; cancellations and postponements emit a
// notification.
func (s *MatchService) UpdateStatus(ctx context.Context, organizationID, id string, data dto.UpdateMatchStatus) (*entity.Match, error) {
	match, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}

	next := entity.MatchStatus(data.Status)
	if !match.Status.CanTransition(next) {
		return nil, errorz.BadRequest("INVALID_TRANSITION",
			fmt.Sprintf("cannot transition match from %s to %s", match.Status, next))
	}

	match.Status = next
	updated, err := s.matches.Update(ctx, match)
	if err != nil {
		return nil, err
	}

	switch next {
	case entity.MatchStatusCancelled, entity.MatchStatusPostponed:
		s.notify.Notify(ctx, organizationID, dto.CreateNotification{
			Type:              string(entity.NotificationTypeMatchUpdate),
			Severity:          string(entity.SeverityWarning),
			Title:             "Match " + statusLabel(next),
			Message:           fmt.Sprintf("The match on %s has been %s", match.Date.Format("2006-01-02"), statusLabel(next)),
			RelatedEntityType: "match",
			RelatedEntityID:   match.ID,
		})
	}

	return updated, nil
}

func statusLabel(status entity.MatchStatus) string {
	switch status {
	case entity.MatchStatusCancelled:
		return "cancelled"
	case entity.MatchStatusPostponed:
		return "postponed"
	default:
		return string(status)
	}
}

// RecordResult stores the final score of a match in progress and completes it.
func (s *MatchService) RecordResult(ctx context.Context, organizationID, id string, data dto.RecordMatchResult) (*entity.Match, error) {
	match, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return nil, err
	}
	if !match.Status.CanTransition(entity.MatchStatusCompleted) {
		return nil, errorz.BadRequest("INVALID_TRANSITION",
			fmt.Sprintf("cannot complete a match in status %s", match.Status))
	}
	match.HomeScore = &data.HomeScore
	match.AwayScore = &data.AwayScore
	match.Status = entity.MatchStatusCompleted
	return s.matches.Update(ctx, match)
}

// ReplaceRoster swaps the match roster in one transaction. Every athlete
// must belong to the organization and jersey numbers must be unique within
// the roster.
func (s *MatchService) ReplaceRoster(ctx context.Context, organizationID, id string, data dto.ReplaceRoster) error {
	match, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if match.Status == entity.MatchStatusCompleted {
		return errorz.BadRequest("MATCH_COMPLETED", "cannot change the roster of a completed match")
	}

	seenAthletes := make(map[string]bool, len(data.Roster))
	seenJerseys := make(map[int]bool, len(data.Roster))
	entries := make([]entity.MatchRosterEntry, 0, len(data.Roster))
	for _, e := range data.Roster {
		if seenAthletes[e.AthleteID] {
			return errorz.BadRequest("DUPLICATE_ATHLETE", "athlete listed twice in roster")
		}
		seenAthletes[e.AthleteID] = true

		if e.JerseyNumber != nil {
			if seenJerseys[*e.JerseyNumber] {
				return errorz.Conflict("JERSEY_TAKEN", "jersey number assigned twice in roster")
			}
			seenJerseys[*e.JerseyNumber] = true
		}

		if _, err = s.athletes.Get(ctx, organizationID, e.AthleteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorz.NotFound("ATHLETE_NOT_FOUND", "athlete not found")
			}
			return err
		}

		entries = append(entries, entity.MatchRosterEntry{
			MatchID:      id,
			AthleteID:    e.AthleteID,
			Position:     e.Position,
			JerseyNumber: e.JerseyNumber,
			IsStarter:    e.IsStarter,
		})
	}

	return s.matches.ReplaceRoster(ctx, id, entries)
}

// RecordStats updates per-athlete stats of a completed match.
func (s *MatchService) RecordStats(ctx context.Context, organizationID, id string, stats []dto.AthleteStats) error {
	match, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if match.Status != entity.MatchStatusCompleted && match.Status != entity.MatchStatusInProgress {
		return errorz.BadRequest("MATCH_NOT_PLAYED", "stats can only be recorded for matches in progress or completed")
	}
	return s.matches.UpdateRosterStats(ctx, id, stats)
}

func (s *MatchService) Delete(ctx context.Context, organizationID, id string) error {
	match, err := s.Get(ctx, organizationID, id)
	if err != nil {
		return err
	}
	if match.Status == entity.MatchStatusCompleted {
		return errorz.BadRequest("MATCH_COMPLETED", "completed matches cannot be deleted")
	}
	return s.matches.Delete(ctx, id)
}
