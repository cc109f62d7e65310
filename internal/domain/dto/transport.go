package dto

type CreateZone struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type CreateBus struct {
	Name     string `json:"name" validate:"required"`
	Plate    string `json:"plate"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
}

type CreateBusRoute struct {
	BusID         string `json:"busId" validate:"required,uuid"`
	ZoneID        string `json:"zoneId" validate:"required,uuid"`
	Name          string `json:"name" validate:"required"`
	DepartureTime string `json:"departureTime"`
}

type AssignTransport struct {
	AthleteID  string `json:"athleteId" validate:"required,uuid"`
	BusRouteID string `json:"busRouteId" validate:"required,uuid"`
}

// RouteUtilization reports how full a bus route is.
type RouteUtilization struct {
	RouteID     string  `json:"routeId"`
	RouteName   string  `json:"routeName"`
	Capacity    int     `json:"capacity"`
	Assigned    int     `json:"assigned"`
	Utilization float64 `json:"utilization"`
}
