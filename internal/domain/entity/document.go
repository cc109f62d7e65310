package entity

import "time"

type DocumentStatus string

const (
	DocumentStatusValid    DocumentStatus = "VALID"
	DocumentStatusExpiring DocumentStatus = "EXPIRING"
	DocumentStatusExpired  DocumentStatus = "EXPIRED"
)

// DocumentType describes a category of athlete document (medical certificate,
// identity card, federation membership) with its validity window and the
// day thresholds at which expiry reminders fire.
type DocumentType struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	OrganizationID string `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Category       string
	IsRequired     bool  `gorm:"not null;default:false"`
	ValidityDays   int   `gorm:"not null"`
	ReminderDays   []int `gorm:"serializer:json"`
}

type Document struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	AthleteID      string         `gorm:"not null;index"`
	DocumentTypeID string         `gorm:"not null"`
	FileName       string         `gorm:"not null"`
	FilePath       string         `gorm:"not null"`
	MimeType       string         `gorm:"not null"`
	FileSize       int64          `gorm:"not null"`
	IssueDate      time.Time      `gorm:"not null"`
	ExpiryDate     time.Time      `gorm:"not null"`
	Status         DocumentStatus `gorm:"not null;default:VALID"`

	Athlete      Athlete      `gorm:"foreignKey:AthleteID"`
	DocumentType DocumentType `gorm:"foreignKey:DocumentTypeID"`
}

// ComputeStatus derives the document status from its expiry date. A document
// inside the 30-day window is EXPIRING, past its expiry date EXPIRED.
func (d *Document) ComputeStatus(now time.Time) DocumentStatus {
	switch {
	case !d.ExpiryDate.After(now):
		return DocumentStatusExpired
	case d.ExpiryDate.Before(now.AddDate(0, 0, 30)):
		return DocumentStatusExpiring
	default:
		return DocumentStatusValid
	}
}
