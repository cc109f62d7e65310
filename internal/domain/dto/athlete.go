package dto

import "time"

type CreateAthlete struct {
	FirstName     string    `json:"firstName" validate:"required"`
	LastName      string    `json:"lastName" validate:"required"`
	BirthDate     time.Time `json:"birthDate" validate:"required"`
	FiscalCode    string    `json:"fiscalCode"`
	TeamID        string    `json:"teamId" validate:"omitempty,uuid"`
	JerseyNumber  *int      `json:"jerseyNumber" validate:"omitempty,min=1,max=99"`
	Position      string    `json:"position"`
	GuardianName  string    `json:"guardianName"`
	GuardianPhone string    `json:"guardianPhone"`
	Email         string    `json:"email" validate:"omitempty,email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Notes         string    `json:"notes"`
}

type UpdateAthlete struct {
	FirstName     *string    `json:"firstName"`
	LastName      *string    `json:"lastName"`
	BirthDate     *time.Time `json:"birthDate"`
	FiscalCode    *string    `json:"fiscalCode"`
	TeamID        *string    `json:"teamId" validate:"omitempty,uuid"`
	JerseyNumber  *int       `json:"jerseyNumber" validate:"omitempty,min=1,max=99"`
	Position      *string    `json:"position"`
	Status        *string    `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE INJURED"`
	GuardianName  *string    `json:"guardianName"`
	GuardianPhone *string    `json:"guardianPhone"`
	Email         *string    `json:"email" validate:"omitempty,email"`
	Phone         *string    `json:"phone"`
	Address       *string    `json:"address"`
	Notes         *string    `json:"notes"`
}

// AthleteFilter narrows athlete listings.
type AthleteFilter struct {
	TeamID         string
	Status         string
	Search         string
	NeedsPromotion *bool
	Offset         int
	Limit          int
}
