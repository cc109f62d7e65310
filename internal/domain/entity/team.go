package entity

import "time"

// Team is an age-bracketed roster container. Athletes whose age falls outside
// [MinAge, MaxAge] are flagged for promotion but not blocked.
type Team struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	OrganizationID string `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Category       string
	MinAge         int `gorm:"not null"`
	MaxAge         int `gorm:"not null"`
	Season         string
	CoachName      string

	Organization Organization `gorm:"foreignKey:OrganizationID"`
}
