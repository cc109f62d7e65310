package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type fakeTransportStorage struct {
	zones       map[string]*entity.TransportZone
	buses       map[string]*entity.Bus
	routes      map[string]*entity.BusRoute
	assignments map[string]*entity.AthleteTransport
}

func newFakeTransportStorage() *fakeTransportStorage {
	return &fakeTransportStorage{
		zones:       make(map[string]*entity.TransportZone),
		buses:       make(map[string]*entity.Bus),
		routes:      make(map[string]*entity.BusRoute),
		assignments: make(map[string]*entity.AthleteTransport),
	}
}

func (f *fakeTransportStorage) CreateZone(_ context.Context, zone *entity.TransportZone) (*entity.TransportZone, error) {
	if zone.ID == "" {
		zone.ID = uuid.New().String()
	}
	f.zones[zone.ID] = zone
	return zone, nil
}

func (f *fakeTransportStorage) GetZone(_ context.Context, organizationID, id string) (*entity.TransportZone, error) {
	zone, ok := f.zones[id]
	if !ok || zone.OrganizationID != organizationID {
		return nil, gorm.ErrRecordNotFound
	}
	return zone, nil
}

func (f *fakeTransportStorage) ListZones(_ context.Context, organizationID string) ([]entity.TransportZone, error) {
	var out []entity.TransportZone
	for _, zone := range f.zones {
		if zone.OrganizationID == organizationID {
			out = append(out, *zone)
		}
	}
	return out, nil
}

func (f *fakeTransportStorage) DeleteZone(_ context.Context, organizationID, id string) error {
	if zone, ok := f.zones[id]; ok && zone.OrganizationID == organizationID {
		delete(f.zones, id)
	}
	return nil
}

func (f *fakeTransportStorage) CreateBus(_ context.Context, bus *entity.Bus) (*entity.Bus, error) {
	if bus.ID == "" {
		bus.ID = uuid.New().String()
	}
	f.buses[bus.ID] = bus
	return bus, nil
}

func (f *fakeTransportStorage) GetBus(_ context.Context, organizationID, id string) (*entity.Bus, error) {
	bus, ok := f.buses[id]
	if !ok || bus.OrganizationID != organizationID {
		return nil, gorm.ErrRecordNotFound
	}
	return bus, nil
}

func (f *fakeTransportStorage) ListBuses(_ context.Context, organizationID string) ([]entity.Bus, error) {
	var out []entity.Bus
	for _, bus := range f.buses {
		if bus.OrganizationID == organizationID {
			out = append(out, *bus)
		}
	}
	return out, nil
}

func (f *fakeTransportStorage) CreateRoute(_ context.Context, route *entity.BusRoute) (*entity.BusRoute, error) {
	if route.ID == "" {
		route.ID = uuid.New().String()
	}
	if bus, ok := f.buses[route.BusID]; ok {
		route.Bus = *bus
	}
	f.routes[route.ID] = route
	return route, nil
}

func (f *fakeTransportStorage) GetRoute(_ context.Context, organizationID, id string) (*entity.BusRoute, error) {
	route, ok := f.routes[id]
	if !ok || route.Bus.OrganizationID != organizationID {
		return nil, gorm.ErrRecordNotFound
	}
	return route, nil
}

func (f *fakeTransportStorage) ListRoutes(_ context.Context, organizationID string) ([]entity.BusRoute, error) {
	var out []entity.BusRoute
	for _, route := range f.routes {
		if route.Bus.OrganizationID == organizationID {
			out = append(out, *route)
		}
	}
	return out, nil
}

func (f *fakeTransportStorage) CreateAssignment(_ context.Context, assignment *entity.AthleteTransport) (*entity.AthleteTransport, error) {
	if assignment.ID == "" {
		assignment.ID = uuid.New().String()
	}
	f.assignments[assignment.ID] = assignment
	return assignment, nil
}

func (f *fakeTransportStorage) DeleteAssignment(_ context.Context, _, id string) error {
	delete(f.assignments, id)
	return nil
}

func (f *fakeTransportStorage) CountAssignments(_ context.Context, routeID string) (int64, error) {
	var count int64
	for _, a := range f.assignments {
		if a.BusRouteID == routeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTransportStorage) AssignmentExists(_ context.Context, athleteID, routeID string) (bool, error) {
	for _, a := range f.assignments {
		if a.AthleteID == athleteID && a.BusRouteID == routeID {
			return true, nil
		}
	}
	return false, nil
}

type transportFixture struct {
	service  *TransportService
	storage  *fakeTransportStorage
	athletes *fakeAthleteStorage
}

func newTransportFixture(t *testing.T) *transportFixture {
	t.Helper()
	storage := newFakeTransportStorage()
	athletes := newFakeAthleteStorage()

	return &transportFixture{
		service:  NewTransportService(storage, athletes),
		storage:  storage,
		athletes: athletes,
	}
}

func (f *transportFixture) seedBus(organizationID string, capacity int) *entity.Bus {
	bus, _ := f.storage.CreateBus(context.Background(), &entity.Bus{
		OrganizationID: organizationID,
		Name:           "Bus 1",
		Capacity:       capacity,
		IsActive:       true,
	})
	return bus
}

func (f *transportFixture) seedZone(organizationID string) *entity.TransportZone {
	zone, _ := f.storage.CreateZone(context.Background(), &entity.TransportZone{
		OrganizationID: organizationID,
		Name:           "North",
	})
	return zone
}

func TestCreateRoute(t *testing.T) {
	f := newTransportFixture(t)
	bus := f.seedBus(testOrgID, 20)
	zone := f.seedZone(testOrgID)

	route, err := f.service.CreateRoute(context.Background(), testOrgID, dto.CreateBusRoute{
		BusID:         bus.ID,
		ZoneID:        zone.ID,
		Name:          "Morning run",
		DepartureTime: "07:30",
	})

	require.NoError(t, err)
	assert.True(t, route.IsActive)
	assert.Equal(t, zone.ID, route.ZoneID)
}

func TestCreateRouteUnknownBus(t *testing.T) {
	f := newTransportFixture(t)
	zone := f.seedZone(testOrgID)

	_, err := f.service.CreateRoute(context.Background(), testOrgID, dto.CreateBusRoute{
		BusID:  uuid.New().String(),
		ZoneID: zone.ID,
		Name:   "Morning run",
	})

	require.Error(t, err)
	assert.Equal(t, errorz.KindNotFound, errorz.KindOf(err))
}

func TestCreateRouteZoneFromAnotherOrganization(t *testing.T) {
	f := newTransportFixture(t)
	otherOrg := uuid.New().String()
	bus := f.seedBus(testOrgID, 20)
	foreignZone := f.seedZone(otherOrg)

	_, err := f.service.CreateRoute(context.Background(), testOrgID, dto.CreateBusRoute{
		BusID:  bus.ID,
		ZoneID: foreignZone.ID,
		Name:   "Morning run",
	})

	require.Error(t, err)
	assert.Equal(t, errorz.KindNotFound, errorz.KindOf(err))
	assert.Empty(t, f.storage.routes)
}

func TestAssignFullBusRejected(t *testing.T) {
	f := newTransportFixture(t)
	bus := f.seedBus(testOrgID, 1)
	zone := f.seedZone(testOrgID)
	route, err := f.service.CreateRoute(context.Background(), testOrgID, dto.CreateBusRoute{
		BusID:  bus.ID,
		ZoneID: zone.ID,
		Name:   "Morning run",
	})
	require.NoError(t, err)

	first, _ := f.athletes.Create(context.Background(), &entity.Athlete{OrganizationID: testOrgID})
	second, _ := f.athletes.Create(context.Background(), &entity.Athlete{OrganizationID: testOrgID})

	_, err = f.service.Assign(context.Background(), testOrgID, dto.AssignTransport{
		AthleteID:  first.ID,
		BusRouteID: route.ID,
	})
	require.NoError(t, err)

	_, err = f.service.Assign(context.Background(), testOrgID, dto.AssignTransport{
		AthleteID:  second.ID,
		BusRouteID: route.ID,
	})

	require.Error(t, err)
	assert.Equal(t, errorz.KindConflict, errorz.KindOf(err))
}

func TestAssignTwiceRejected(t *testing.T) {
	f := newTransportFixture(t)
	bus := f.seedBus(testOrgID, 20)
	zone := f.seedZone(testOrgID)
	route, err := f.service.CreateRoute(context.Background(), testOrgID, dto.CreateBusRoute{
		BusID:  bus.ID,
		ZoneID: zone.ID,
		Name:   "Morning run",
	})
	require.NoError(t, err)

	athlete, _ := f.athletes.Create(context.Background(), &entity.Athlete{OrganizationID: testOrgID})

	_, err = f.service.Assign(context.Background(), testOrgID, dto.AssignTransport{
		AthleteID:  athlete.ID,
		BusRouteID: route.ID,
	})
	require.NoError(t, err)

	_, err = f.service.Assign(context.Background(), testOrgID, dto.AssignTransport{
		AthleteID:  athlete.ID,
		BusRouteID: route.ID,
	})

	require.Error(t, err)
	assert.Equal(t, errorz.KindConflict, errorz.KindOf(err))
}
