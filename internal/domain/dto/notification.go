package dto

import "time"

type CreateNotification struct {
	UserID            string     `json:"userId" validate:"omitempty,uuid"`
	Type              string     `json:"type" validate:"required"`
	Severity          string     `json:"severity" validate:"omitempty,oneof=info warning error"`
	Title             string     `json:"title" validate:"required"`
	Message           string     `json:"message" validate:"required"`
	RelatedEntityType string     `json:"relatedEntityType"`
	RelatedEntityID   string     `json:"relatedEntityId"`
	ExpiresAt         *time.Time `json:"expiresAt"`
}

type NotificationFilter struct {
	Unread   *bool
	Type     string
	Severity string
	Limit    int
}

// DashboardStats is the organization overview returned by the dashboard
// endpoint.
type DashboardStats struct {
	AthleteCount      int64   `json:"athleteCount"`
	TeamCount         int64   `json:"teamCount"`
	UpcomingMatches   int64   `json:"upcomingMatches"`
	ExpiringDocuments int64   `json:"expiringDocuments"`
	OverduePayments   int64   `json:"overduePayments"`
	OverdueAmount     float64 `json:"overdueAmount"`
}
