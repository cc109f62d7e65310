package entity

import "time"

// Role is a named permission set scoped to an organization. System roles are
// seeded at organization creation and cannot be edited or deleted.
type Role struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	OrganizationID string   `gorm:"not null;index"`
	Name           string   `gorm:"not null"`
	Description    string
	Permissions    []string `gorm:"serializer:json"`
	IsSystem       bool     `gorm:"not null;default:false"`
}
