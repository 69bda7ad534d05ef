package domain

import "time"

// Status of a route. COMPLETED is terminal; any other status may
// transition to COMPLETED via route completion.
type RouteStatus string

const (
	RouteScheduled  RouteStatus = "SCHEDULED"
	RouteActive     RouteStatus = "ACTIVE"
	RouteInProgress RouteStatus = "IN_PROGRESS"
	RouteCompleted  RouteStatus = "COMPLETED"
)

// Route is a scheduled sequence of stops assigned to an employee and
// optionally a vehicle. Routes are created by dispatch and mutated only
// by the lifecycle service; they are never deleted.
type Route struct {
	ID           int64
	Name         string
	Description  string
	VehicleID    *int64
	EmployeeID   *int64
	ScheduleDate time.Time
	Status       RouteStatus
}

// Waypoint is one ordered stop within a route, optionally tied to a
// physical bin. Immutable once created. Sequence defines visiting
// order; values need not be contiguous.
type Waypoint struct {
	ID       int64
	RouteID  int64
	Sequence int
	Location Coordinates
	BinID    string
}
