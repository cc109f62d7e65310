package postgres

import "github.com/241luca/soccer-manager/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.Organization{},
	&entity.OrganizationInvitation{},
	&entity.User{},
	&entity.Role{},
	&entity.UserOrganization{},
	&entity.Team{},
	&entity.Athlete{},
	&entity.Match{},
	&entity.MatchRosterEntry{},
	&entity.PaymentType{},
	&entity.Payment{},
	&entity.DocumentType{},
	&entity.Document{},
	&entity.TransportZone{},
	&entity.Bus{},
	&entity.BusRoute{},
	&entity.AthleteTransport{},
	&entity.Notification{},
	&entity.AuditLog{},
}
