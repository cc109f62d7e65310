package dto

import "time"

// UploadDocument carries the metadata of a multipart document upload; the
// file itself travels alongside as form data.
type UploadDocument struct {
	AthleteID      string    `json:"athleteId" validate:"required,uuid"`
	DocumentTypeID string    `json:"documentTypeId" validate:"required,uuid"`
	IssueDate      time.Time `json:"issueDate" validate:"required"`
	ExpiryDate     time.Time `json:"expiryDate" validate:"required,gtfield=IssueDate"`
}

type CreateDocumentType struct {
	Name         string `json:"name" validate:"required"`
	Category     string `json:"category"`
	IsRequired   bool   `json:"isRequired"`
	ValidityDays int    `json:"validityDays" validate:"required,gt=0"`
	ReminderDays []int  `json:"reminderDays"`
}

type DocumentFilter struct {
	AthleteID string
	Status    string
	Expiring  bool
}
