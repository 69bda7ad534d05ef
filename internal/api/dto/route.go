package dto

import "time"

type WaypointRequest struct {
	Sequence  int     `json:"sequence"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	BinID     string  `json:"bin_id"`
}

type CreateRouteRequest struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	VehicleID    *int64            `json:"vehicle_id"`
	EmployeeID   *int64            `json:"employee_id"`
	ScheduleDate time.Time         `json:"schedule_date"`
	Waypoints    []WaypointRequest `json:"waypoints"`
}

type RouteResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	VehicleID    *int64    `json:"vehicle_id"`
	EmployeeID   *int64    `json:"employee_id"`
	ScheduleDate time.Time `json:"schedule_date"`
	Status       string    `json:"status"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}

type WaypointResponse struct {
	ID        int64   `json:"id"`
	RouteID   int64   `json:"route_id"`
	Sequence  int     `json:"sequence"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	BinID     string  `json:"bin_id,omitempty"`
}

type ListWaypointsResponse struct {
	Waypoints []WaypointResponse `json:"waypoints"`
}

type CompleteRouteRequest struct {
	RouteID  int64  `json:"route_id"`
	Remark   string `json:"remark"`
	PhotoURL string `json:"photo_url"`
}
