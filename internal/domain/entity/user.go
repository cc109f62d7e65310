package entity

import "time"

type User struct {
	ID                  string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Email               string `gorm:"uniqueIndex;not null"`
	PasswordHash        string `gorm:"not null"`
	FirstName           string `gorm:"not null"`
	LastName            string `gorm:"not null"`
	Phone               string
	IsActive            bool `gorm:"not null;default:true"`
	IsSuperAdmin        bool `gorm:"not null;default:false"`
	FailedLoginAttempts int  `gorm:"not null;default:0"`
	LockedUntil         *time.Time
	LastLogin           *time.Time
}

// UserOrganization joins a user to an organization with a role. A user may
// belong to many organizations; at most one membership is the default.
type UserOrganization struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	UserID         string `gorm:"not null;uniqueIndex:idx_user_org"`
	OrganizationID string `gorm:"not null;uniqueIndex:idx_user_org"`
	RoleID         string `gorm:"not null"`
	IsDefault      bool   `gorm:"not null;default:false"`

	User         User         `gorm:"foreignKey:UserID"`
	Organization Organization `gorm:"foreignKey:OrganizationID"`
	Role         Role         `gorm:"foreignKey:RoleID"`
}
