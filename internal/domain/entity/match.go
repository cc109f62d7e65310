package entity

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "SCHEDULED"
	MatchStatusInProgress MatchStatus = "IN_PROGRESS"
	MatchStatusCompleted  MatchStatus = "COMPLETED"
	MatchStatusCancelled  MatchStatus = "CANCELLED"
	MatchStatusPostponed  MatchStatus = "POSTPONED"
)

type MatchType string

const (
	MatchTypeFriendly   MatchType = "FRIENDLY"
	MatchTypeLeague     MatchType = "LEAGUE"
	MatchTypeCup        MatchType = "CUP"
	MatchTypeTournament MatchType = "TOURNAMENT"
)

// matchTransitions is the static table of allowed status transitions.
// Cancelled and postponed matches can go back to scheduled; completed
// matches are terminal.
var matchTransitions = map[MatchStatus][]MatchStatus{
	MatchStatusScheduled:  {MatchStatusInProgress, MatchStatusCancelled, MatchStatusPostponed},
	MatchStatusInProgress: {MatchStatusCompleted, MatchStatusCancelled},
	MatchStatusCompleted:  {},
	MatchStatusCancelled:  {MatchStatusScheduled},
	MatchStatusPostponed:  {MatchStatusScheduled, MatchStatusCancelled},
}

// CanTransition reports whether a match may move from one status to another.
func (s MatchStatus) CanTransition(to MatchStatus) bool {
	for _, allowed := range matchTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

type Match struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	OrganizationID string `gorm:"not null;index"`
	HomeTeamID     string `gorm:"not null"`
	AwayTeamID     *string
	AwayTeamName   string
	Date           time.Time   `gorm:"not null"`
	Time           string
	Venue          string
	Type           MatchType   `gorm:"not null"`
	Status         MatchStatus `gorm:"not null;default:SCHEDULED"`
	Season         string
	HomeScore      *int
	AwayScore      *int
	Notes          string

	Organization Organization       `gorm:"foreignKey:OrganizationID"`
	HomeTeam     Team               `gorm:"foreignKey:HomeTeamID"`
	AwayTeam     *Team              `gorm:"foreignKey:AwayTeamID"`
	Roster       []MatchRosterEntry `gorm:"foreignKey:MatchID"`
}

// MatchRosterEntry is one athlete selected for a match, with per-match stats
// filled in when the match completes.
type MatchRosterEntry struct {
	ID            string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt     time.Time
	MatchID       string `gorm:"not null;uniqueIndex:idx_match_athlete"`
	AthleteID     string `gorm:"not null;uniqueIndex:idx_match_athlete"`
	Position      string
	JerseyNumber  *int
	IsStarter     bool   `gorm:"not null;default:false"`
	MinutesPlayed int    `gorm:"not null;default:0"`
	Goals         int    `gorm:"not null;default:0"`
	Assists       int    `gorm:"not null;default:0"`
	YellowCards   int    `gorm:"not null;default:0"`
	RedCards      int    `gorm:"not null;default:0"`

	Athlete Athlete `gorm:"foreignKey:AthleteID"`
}
