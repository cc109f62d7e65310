package entity

import "time"

type TransportZone struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	OrganizationID string `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Description    string
}

type Bus struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt      time.Time
	OrganizationID string `gorm:"not null;index"`
	Name           string `gorm:"not null"`
	Plate          string
	Capacity       int  `gorm:"not null"`
	IsActive       bool `gorm:"not null;default:true"`
}

type BusRoute struct {
	ID            string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt     time.Time
	BusID         string `gorm:"not null;index"`
	ZoneID        string `gorm:"not null"`
	Name          string `gorm:"not null"`
	DepartureTime string
	IsActive      bool `gorm:"not null;default:true"`

	Bus  Bus           `gorm:"foreignKey:BusID"`
	Zone TransportZone `gorm:"foreignKey:ZoneID"`
}

// AthleteTransport assigns an athlete to a bus route.
type AthleteTransport struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt  time.Time
	AthleteID  string `gorm:"not null;uniqueIndex:idx_athlete_route"`
	BusRouteID string `gorm:"not null;uniqueIndex:idx_athlete_route"`
	IsActive   bool   `gorm:"not null;default:true"`

	Athlete  Athlete  `gorm:"foreignKey:AthleteID"`
	BusRoute BusRoute `gorm:"foreignKey:BusRouteID"`
}
