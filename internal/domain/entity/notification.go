package entity

import "time"

type NotificationType string

const (
	NotificationTypeDocumentExpiry    NotificationType = "document_expiry"
	NotificationTypePaymentOverdue    NotificationType = "payment_overdue"
	NotificationTypeMatchReminder     NotificationType = "match_reminder"
	NotificationTypeMatchUpdate       NotificationType = "match_update"
	NotificationTypeTransportCapacity NotificationType = "transport_capacity"
	NotificationTypeAthletePromotion  NotificationType = "athlete_promotion"
	NotificationTypeSystem            NotificationType = "system"
)

type NotificationSeverity string

const (
	SeverityInfo    NotificationSeverity = "info"
	SeverityWarning NotificationSeverity = "warning"
	SeverityError   NotificationSeverity = "error"
)

// Notification is an organization-scoped message, optionally targeted at a
// single user. UserID nil means organization-wide.
type Notification struct {
	ID                string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt         time.Time `gorm:"index"`
	OrganizationID    string    `gorm:"not null;index"`
	UserID            *string
	Type              NotificationType     `gorm:"not null;index"`
	Severity          NotificationSeverity `gorm:"not null;default:info"`
	Title             string               `gorm:"not null"`
	Message           string               `gorm:"not null"`
	RelatedEntityType string
	RelatedEntityID   string `gorm:"index"`
	IsRead            bool   `gorm:"not null;default:false"`
	ExpiresAt         *time.Time
}
