package ports

import (
	"context"
	"time"

	"waste-ops-service/internal/domain"
)

// Port: boundary for Route persistence. Lookups return (nil, nil) when
// the id does not resolve; services translate that to domain.ErrNotFound.
type RouteRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Route, error)
	// Routes assigned to one employee whose schedule timestamp falls in
	// [start, end).
	ListForEmployeeBetween(ctx context.Context, employeeID int64, start, end time.Time) ([]*domain.Route, error)
	// All routes scheduled on the given calendar day, any employee.
	ListForDate(ctx context.Context, date time.Time) ([]*domain.Route, error)
	ListByStatus(ctx context.Context, status domain.RouteStatus) ([]*domain.Route, error)
	CountForEmployee(ctx context.Context, employeeID int64) (int, error)
	// Create assigns the route id and persists its waypoints in one unit.
	Create(ctx context.Context, route *domain.Route, waypoints []*domain.Waypoint) (*domain.Route, error)
	// Save persists status mutations of an existing route.
	Save(ctx context.Context, route *domain.Route) error
	List(ctx context.Context) ([]*domain.Route, error)
}

// Port: read access to a route's immutable waypoints.
type WaypointRepository interface {
	// Waypoints of a route, sorted ascending by sequence.
	ListByRoute(ctx context.Context, routeID int64) ([]*domain.Waypoint, error)
	FindByID(ctx context.Context, id int64) (*domain.Waypoint, error)
}
