package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type transportStorage interface {
	CreateZone(ctx context.Context, zone *entity.TransportZone) (*entity.TransportZone, error)
	GetZone(ctx context.Context, organizationID, id string) (*entity.TransportZone, error)
	ListZones(ctx context.Context, organizationID string) ([]entity.TransportZone, error)
	DeleteZone(ctx context.Context, organizationID, id string) error

	CreateBus(ctx context.Context, bus *entity.Bus) (*entity.Bus, error)
	GetBus(ctx context.Context, organizationID, id string) (*entity.Bus, error)
	ListBuses(ctx context.Context, organizationID string) ([]entity.Bus, error)

	CreateRoute(ctx context.Context, route *entity.BusRoute) (*entity.BusRoute, error)
	GetRoute(ctx context.Context, organizationID, id string) (*entity.BusRoute, error)
	ListRoutes(ctx context.Context, organizationID string) ([]entity.BusRoute, error)

	CreateAssignment(ctx context.Context, assignment *entity.AthleteTransport) (*entity.AthleteTransport, error)
	DeleteAssignment(ctx context.Context, organizationID, id string) error
	CountAssignments(ctx context.Context, routeID string) (int64, error)
	AssignmentExists(ctx context.Context, athleteID, routeID string) (bool, error)
}

type transportAthleteStorage interface {
	Get(ctx context.Context, organizationID, id string) (*entity.Athlete, error)
}

type TransportService struct {
	transport transportStorage
	athletes  transportAthleteStorage
}

func NewTransportService(transport transportStorage, athletes transportAthleteStorage) *TransportService {
	return &TransportService{
		transport: transport,
		athletes:  athletes,
	}
}

func (s *TransportService) CreateZone(ctx context.Context, organizationID string, data dto.CreateZone) (*entity.TransportZone, error) {
	return s.transport.CreateZone(ctx, &entity.TransportZone{
		OrganizationID: organizationID,
		Name:           data.Name,
		Description:    data.Description,
	})
}

func (s *TransportService) ListZones(ctx context.Context, organizationID string) ([]entity.TransportZone, error) {
	return s.transport.ListZones(ctx, organizationID)
}

func (s *TransportService) DeleteZone(ctx context.Context, organizationID, id string) error {
	return s.transport.DeleteZone(ctx, organizationID, id)
}

func (s *TransportService) CreateBus(ctx context.Context, organizationID string, data dto.CreateBus) (*entity.Bus, error) {
	return s.transport.CreateBus(ctx, &entity.Bus{
		OrganizationID: organizationID,
		Name:           data.Name,
		Plate:          data.Plate,
		Capacity:       data.Capacity,
		IsActive:       true,
	})
}

func (s *TransportService) ListBuses(ctx context.Context, organizationID string) ([]entity.Bus, error) {
	return s.transport.ListBuses(ctx, organizationID)
}

func (s *TransportService) CreateRoute(ctx context.Context, organizationID string, data dto.CreateBusRoute) (*entity.BusRoute, error) {
	if _, err := s.transport.GetBus(ctx, organizationID, data.BusID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("BUS_NOT_FOUND", "bus not found")
		}
		return nil, err
	}
	if _, err := s.transport.GetZone(ctx, organizationID, data.ZoneID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("ZONE_NOT_FOUND", "transport zone not found")
		}
		return nil, err
	}
	return s.transport.CreateRoute(ctx, &entity.BusRoute{
		BusID:         data.BusID,
		ZoneID:        data.ZoneID,
		Name:          data.Name,
		DepartureTime: data.DepartureTime,
		IsActive:      true,
	})
}

func (s *TransportService) ListRoutes(ctx context.Context, organizationID string) ([]entity.BusRoute, error) {
	return s.transport.ListRoutes(ctx, organizationID)
}

// Assign puts an athlete on a bus route; a full bus rejects the assignment.
func (s *TransportService) Assign(ctx context.Context, organizationID string, data dto.AssignTransport) (*entity.AthleteTransport, error) {
	if _, err := s.athletes.Get(ctx, organizationID, data.AthleteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("ATHLETE_NOT_FOUND", "athlete not found")
		}
		return nil, err
	}
	route, err := s.transport.GetRoute(ctx, organizationID, data.BusRouteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("ROUTE_NOT_FOUND", "bus route not found")
		}
		return nil, err
	}

	exists, err := s.transport.AssignmentExists(ctx, data.AthleteID, data.BusRouteID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errorz.Conflict("ALREADY_ASSIGNED", "athlete is already assigned to this route")
	}

	assigned, err := s.transport.CountAssignments(ctx, data.BusRouteID)
	if err != nil {
		return nil, err
	}
	if assigned >= int64(route.Bus.Capacity) {
		return nil, errorz.Conflict("BUS_FULL", "bus route is at full capacity")
	}

	return s.transport.CreateAssignment(ctx, &entity.AthleteTransport{
		AthleteID:  data.AthleteID,
		BusRouteID: data.BusRouteID,
		IsActive:   true,
	})
}

func (s *TransportService) Unassign(ctx context.Context, organizationID, assignmentID string) error {
	return s.transport.DeleteAssignment(ctx, organizationID, assignmentID)
}

// Utilization reports route occupancy as a percentage of bus capacity.
func (s *TransportService) Utilization(ctx context.Context, organizationID string) ([]dto.RouteUtilization, error) {
	routes, err := s.transport.ListRoutes(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.RouteUtilization, 0, len(routes))
	for _, route := range routes {
		assigned, err := s.transport.CountAssignments(ctx, route.ID)
		if err != nil {
			return nil, err
		}
		var utilization float64
		if route.Bus.Capacity > 0 {
			utilization = float64(assigned) / float64(route.Bus.Capacity) * 100
		}
		result = append(result, dto.RouteUtilization{
			RouteID:     route.ID,
			RouteName:   route.Name,
			Capacity:    route.Bus.Capacity,
			Assigned:    int(assigned),
			Utilization: utilization,
		})
	}
	return result, nil
}
