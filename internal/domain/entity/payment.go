package entity

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPaid      PaymentStatus = "PAID"
	PaymentStatusOverdue   PaymentStatus = "OVERDUE"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

type PaymentType struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	OrganizationID string  `gorm:"not null;index"`
	Name           string  `gorm:"not null"`
	Amount         float64 `gorm:"not null"`
	Frequency      string  `gorm:"not null"`
	Category       string
}

type Payment struct {
	ID            string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	AthleteID     string        `gorm:"not null;index"`
	PaymentTypeID string        `gorm:"not null"`
	Amount        float64       `gorm:"not null"`
	DueDate       time.Time     `gorm:"not null"`
	Status        PaymentStatus `gorm:"not null;default:PENDING"`
	PaidDate      *time.Time
	PaymentMethod string
	Period        string
	Notes         string

	Athlete     Athlete     `gorm:"foreignKey:AthleteID"`
	PaymentType PaymentType `gorm:"foreignKey:PaymentTypeID"`
}

// DaysOverdue returns how many full days the payment is past due, zero when
// not overdue.
func (p *Payment) DaysOverdue(now time.Time) int {
	if !now.After(p.DueDate) {
		return 0
	}
	return int(now.Sub(p.DueDate).Hours() / 24)
}
