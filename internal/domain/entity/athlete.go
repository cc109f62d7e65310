package entity

import "time"

type AthleteStatus string

const (
	AthleteStatusActive   AthleteStatus = "ACTIVE"
	AthleteStatusInactive AthleteStatus = "INACTIVE"
	AthleteStatusInjured  AthleteStatus = "INJURED"
)

type Athlete struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	OrganizationID string `gorm:"not null;index"`
	TeamID         *string
	FirstName      string    `gorm:"not null"`
	LastName       string    `gorm:"not null"`
	BirthDate      time.Time `gorm:"not null"`
	FiscalCode     string
	JerseyNumber   *int
	Position       string
	Status         AthleteStatus `gorm:"not null;default:ACTIVE"`
	NeedsPromotion bool          `gorm:"not null;default:false"`
	GuardianName   string
	GuardianPhone  string
	Email          string
	Phone          string
	Address        string
	Notes          string

	Organization Organization `gorm:"foreignKey:OrganizationID"`
	Team         *Team        `gorm:"foreignKey:TeamID"`
}

// Age returns the athlete's age in full years at the given time.
func (a *Athlete) Age(now time.Time) int {
	age := now.Year() - a.BirthDate.Year()
	if now.YearDay() < a.BirthDate.YearDay() {
		age--
	}
	return age
}
