package dto

import "time"

type CreatePayment struct {
	AthleteID     string    `json:"athleteId" validate:"required,uuid"`
	PaymentTypeID string    `json:"paymentTypeId" validate:"required,uuid"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	DueDate       time.Time `json:"dueDate" validate:"required"`
	Period        string    `json:"period"`
	Notes         string    `json:"notes"`
}

type UpdatePayment struct {
	Amount  *float64   `json:"amount" validate:"omitempty,gt=0"`
	DueDate *time.Time `json:"dueDate"`
	Period  *string    `json:"period"`
	Notes   *string    `json:"notes"`
}

type RecordPayment struct {
	PaymentMethod string     `json:"paymentMethod" validate:"required,oneof=cash card transfer other"`
	PaidDate      *time.Time `json:"paidDate"`
}

type PaymentFilter struct {
	AthleteID string
	Status    string
	Overdue   bool
}

// PaymentSummary aggregates an organization's payment situation.
type PaymentSummary struct {
	TotalAmount   float64 `json:"totalAmount"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
	OverdueAmount float64 `json:"overdueAmount"`
	PaidCount     int     `json:"paidCount"`
	PendingCount  int     `json:"pendingCount"`
	OverdueCount  int     `json:"overdueCount"`
}
