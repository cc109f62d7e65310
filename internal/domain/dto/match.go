package dto

import "time"

type CreateMatch struct {
	HomeTeamID   string    `json:"homeTeamId" validate:"required,uuid"`
	AwayTeamID   string    `json:"awayTeamId" validate:"omitempty,uuid"`
	AwayTeamName string    `json:"awayTeamName"`
	Date         time.Time `json:"date" validate:"required"`
	Time         string    `json:"time"`
	Venue        string    `json:"venue"`
	Type         string    `json:"type" validate:"required,oneof=FRIENDLY LEAGUE CUP TOURNAMENT"`
	Season       string    `json:"season"`
	Notes        string    `json:"notes"`
}

type UpdateMatch struct {
	Date   *time.Time `json:"date"`
	Time   *string    `json:"time"`
	Venue  *string    `json:"venue"`
	Season *string    `json:"season"`
	Notes  *string    `json:"notes"`
}

type UpdateMatchStatus struct {
	Status string `json:"status" validate:"required,oneof=SCHEDULED IN_PROGRESS COMPLETED CANCELLED POSTPONED"`
}

type RecordMatchResult struct {
	HomeScore int `json:"homeScore" validate:"min=0"`
	AwayScore int `json:"awayScore" validate:"min=0"`
}

type RosterEntry struct {
	AthleteID    string `json:"athleteId" validate:"required,uuid"`
	Position     string `json:"position"`
	JerseyNumber *int   `json:"jerseyNumber" validate:"omitempty,min=1,max=99"`
	IsStarter    bool   `json:"isStarter"`
}

// ReplaceRoster swaps the full roster of a match in one transaction.
type ReplaceRoster struct {
	Roster []RosterEntry `json:"roster" validate:"required,dive"`
}

type AthleteStats struct {
	AthleteID     string `json:"athleteId" validate:"required,uuid"`
	MinutesPlayed int    `json:"minutesPlayed" validate:"min=0"`
	Goals         int    `json:"goals" validate:"min=0"`
	Assists       int    `json:"assists" validate:"min=0"`
	YellowCards   int    `json:"yellowCards" validate:"min=0,max=2"`
	RedCards      int    `json:"redCards" validate:"min=0,max=1"`
}

type MatchFilter struct {
	TeamID   string
	Status   string
	Type     string
	Upcoming bool
	Season   string
}
