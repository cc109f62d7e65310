package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type TransportStorage struct {
	db *gorm.DB
}

func NewTransportStorage(db *gorm.DB) *TransportStorage {
	return &TransportStorage{
		db: db,
	}
}

// CreateZone is a function that creates a new transport zone in the database.
func (s *TransportStorage) CreateZone(ctx context.Context, zone *entity.TransportZone) (*entity.TransportZone, error) {
	err := s.db.WithContext(ctx).Create(&zone).Error
	return zone, err
}

// ListZones is a function that gets all transport zones of an organization.
func (s *TransportStorage) ListZones(ctx context.Context, organizationID string) ([]entity.TransportZone, error) {
	var zones []entity.TransportZone
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("name").
		Find(&zones).Error
	return zones, err
}

// GetZone is a function that gets a transport zone of an organization by id.
func (s *TransportStorage) GetZone(ctx context.Context, organizationID, id string) (*entity.TransportZone, error) {
	var zone entity.TransportZone
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&zone).Error
	return &zone, err
}

// DeleteZone is a function that removes a transport zone from the database.
func (s *TransportStorage) DeleteZone(ctx context.Context, organizationID, id string) error {
	return s.db.WithContext(ctx).
		Delete(&entity.TransportZone{}, "organization_id = ? AND id = ?", organizationID, id).Error
}

// CreateBus is a function that creates a new bus in the database.
func (s *TransportStorage) CreateBus(ctx context.Context, bus *entity.Bus) (*entity.Bus, error) {
	err := s.db.WithContext(ctx).Create(&bus).Error
	return bus, err
}

// GetBus is a function that gets a bus of an organization by id.
func (s *TransportStorage) GetBus(ctx context.Context, organizationID, id string) (*entity.Bus, error) {
	var bus entity.Bus
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&bus).Error
	return &bus, err
}

// ListBuses is a function that gets all buses of an organization.
func (s *TransportStorage) ListBuses(ctx context.Context, organizationID string) ([]entity.Bus, error) {
	var buses []entity.Bus
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("name").
		Find(&buses).Error
	return buses, err
}

// Routes carry no organization column; tenancy comes from the bus row.
func (s *TransportStorage) scopedRoutes(ctx context.Context, organizationID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&entity.BusRoute{}).
		Joins("JOIN buses ON buses.id = bus_routes.bus_id").
		Where("buses.organization_id = ?", organizationID)
}

// CreateRoute is a function that creates a new bus route in the database.
func (s *TransportStorage) CreateRoute(ctx context.Context, route *entity.BusRoute) (*entity.BusRoute, error) {
	err := s.db.WithContext(ctx).Create(&route).Error
	return route, err
}

// GetRoute is a function that gets a bus route of an organization by id with
// the bus and zone preloaded.
func (s *TransportStorage) GetRoute(ctx context.Context, organizationID, id string) (*entity.BusRoute, error) {
	var route entity.BusRoute
	err := s.scopedRoutes(ctx, organizationID).
		Preload("Bus").
		Preload("Zone").
		Where("bus_routes.id = ?", id).
		First(&route).Error
	return &route, err
}

// ListRoutes is a function that gets all bus routes of an organization.
func (s *TransportStorage) ListRoutes(ctx context.Context, organizationID string) ([]entity.BusRoute, error) {
	var routes []entity.BusRoute
	err := s.scopedRoutes(ctx, organizationID).
		Preload("Bus").
		Preload("Zone").
		Order("bus_routes.name").
		Find(&routes).Error
	return routes, err
}

// ActiveRoutes is a function that gets the active bus routes of an
// organization with the bus preloaded.
func (s *TransportStorage) ActiveRoutes(ctx context.Context, organizationID string) ([]entity.BusRoute, error) {
	var routes []entity.BusRoute
	err := s.scopedRoutes(ctx, organizationID).
		Preload("Bus").
		Where("bus_routes.is_active = ?", true).
		Find(&routes).Error
	return routes, err
}

// CreateAssignment is a function that puts an athlete on a bus route.
func (s *TransportStorage) CreateAssignment(ctx context.Context, assignment *entity.AthleteTransport) (*entity.AthleteTransport, error) {
	err := s.db.WithContext(ctx).Create(&assignment).Error
	return assignment, err
}

// DeleteAssignment removes a route assignment, scoped through the athlete's
// organization.
func (s *TransportStorage) DeleteAssignment(ctx context.Context, organizationID, id string) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND athlete_id IN (?)", id,
			s.db.Model(&entity.Athlete{}).Select("id").Where("organization_id = ?", organizationID)).
		Delete(&entity.AthleteTransport{}).Error
}

// CountAssignments is a function that counts active assignments of a route.
func (s *TransportStorage) CountAssignments(ctx context.Context, routeID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.AthleteTransport{}).
		Where("bus_route_id = ? AND is_active = ?", routeID, true).
		Count(&count).Error
	return count, err
}

// AssignmentExists reports whether the athlete is already on the route.
func (s *TransportStorage) AssignmentExists(ctx context.Context, athleteID, routeID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.AthleteTransport{}).
		Where("athlete_id = ? AND bus_route_id = ?", athleteID, routeID).
		Count(&count).Error
	return count > 0, err
}
