package entity

import "time"

// AuditLog is an append-only record of a mutation, written alongside the
// change for display purposes only.
type AuditLog struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time `gorm:"index"`
	OrganizationID string    `gorm:"not null;index"`
	UserID         string    `gorm:"not null"`
	Action         string    `gorm:"not null"`
	EntityType     string    `gorm:"not null"`
	EntityID       string
	Details        string
}
