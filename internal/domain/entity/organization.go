package entity

import "time"

type Organization struct {
	ID           string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string `gorm:"not null"`
	Code         string `gorm:"uniqueIndex;not null"`
	Subdomain    string `gorm:"uniqueIndex;not null"`
	Plan         string `gorm:"not null;default:trial"`
	IsTrial      bool   `gorm:"not null;default:false"`
	TrialEndsAt  *time.Time
	IsActive     bool `gorm:"not null;default:true"`
	MaxUsers     int  `gorm:"not null;default:10"`
	MaxAthletes  int  `gorm:"not null;default:200"`
	BillingEmail string
	LogoPath     string
	Address      string
	Phone        string
}

// OrganizationInvitation is a single-use, expiring invite to join an
// organization with a preassigned role.
type OrganizationInvitation struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	OrganizationID string    `gorm:"not null;index"`
	Email          string    `gorm:"not null;index"`
	RoleID         string    `gorm:"not null"`
	Token          string    `gorm:"uniqueIndex;not null"`
	InvitedByID    string    `gorm:"not null"`
	ExpiresAt      time.Time `gorm:"not null"`
	AcceptedAt     *time.Time

	Organization Organization `gorm:"foreignKey:OrganizationID"`
	Role         Role         `gorm:"foreignKey:RoleID"`
}
