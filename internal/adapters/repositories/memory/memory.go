// Package memory provides in-memory implementations of the repository
// ports, used by service tests and local experiments. They mirror the
// SQL adapters' semantics: id assignment on insert, (nil, nil) on
// missing lookups, sorted waypoint listings.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

type RouteRepository struct {
	mu        sync.Mutex
	nextID    int64
	nextWpID  int64
	routes    map[int64]*domain.Route
	waypoints map[int64]*domain.Waypoint
}

func NewRouteRepository() *RouteRepository {
	return &RouteRepository{
		nextID:    1,
		nextWpID:  1,
		routes:    map[int64]*domain.Route{},
		waypoints: map[int64]*domain.Waypoint{},
	}
}

func (r *RouteRepository) FindByID(ctx context.Context, id int64) (*domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route, ok := r.routes[id]
	if !ok {
		return nil, nil
	}
	copied := *route
	return &copied, nil
}

func (r *RouteRepository) ListForEmployeeBetween(ctx context.Context, employeeID int64, start, end time.Time) ([]*domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Route
	for _, route := range r.routes {
		if route.EmployeeID == nil || *route.EmployeeID != employeeID {
			continue
		}
		if route.ScheduleDate.Before(start) || !route.ScheduleDate.Before(end) {
			continue
		}
		copied := *route
		out = append(out, &copied)
	}
	sortRoutes(out)
	return out, nil
}

func (r *RouteRepository) ListForDate(ctx context.Context, date time.Time) ([]*domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Route
	for _, route := range r.routes {
		if domain.DateOf(route.ScheduleDate).Equal(domain.DateOf(date)) {
			copied := *route
			out = append(out, &copied)
		}
	}
	sortRoutes(out)
	return out, nil
}

func (r *RouteRepository) ListByStatus(ctx context.Context, status domain.RouteStatus) ([]*domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Route
	for _, route := range r.routes {
		if route.Status == status {
			copied := *route
			out = append(out, &copied)
		}
	}
	sortRoutes(out)
	return out, nil
}

func (r *RouteRepository) CountForEmployee(ctx context.Context, employeeID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, route := range r.routes {
		if route.EmployeeID != nil && *route.EmployeeID == employeeID {
			n++
		}
	}
	return n, nil
}

func (r *RouteRepository) Create(ctx context.Context, route *domain.Route, waypoints []*domain.Waypoint) (*domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route.ID = r.nextID
	r.nextID++
	copied := *route
	r.routes[route.ID] = &copied

	for _, wp := range waypoints {
		wp.ID = r.nextWpID
		wp.RouteID = route.ID
		r.nextWpID++
		wpCopy := *wp
		r.waypoints[wp.ID] = &wpCopy
	}
	return route, nil
}

func (r *RouteRepository) Save(ctx context.Context, route *domain.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *route
	r.routes[route.ID] = &copied
	return nil
}

func (r *RouteRepository) List(ctx context.Context) ([]*domain.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Route, 0, len(r.routes))
	for _, route := range r.routes {
		copied := *route
		out = append(out, &copied)
	}
	sortRoutes(out)
	return out, nil
}

// Waypoints returns a WaypointRepository view over the same store.
func (r *RouteRepository) Waypoints() *WaypointRepository {
	return &WaypointRepository{routes: r}
}

func sortRoutes(routes []*domain.Route) {
	sort.Slice(routes, func(i, j int) bool { return routes[i].ID < routes[j].ID })
}

type WaypointRepository struct {
	routes *RouteRepository
}

func (w *WaypointRepository) ListByRoute(ctx context.Context, routeID int64) ([]*domain.Waypoint, error) {
	w.routes.mu.Lock()
	defer w.routes.mu.Unlock()
	var out []*domain.Waypoint
	for _, wp := range w.routes.waypoints {
		if wp.RouteID == routeID {
			copied := *wp
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (w *WaypointRepository) FindByID(ctx context.Context, id int64) (*domain.Waypoint, error) {
	w.routes.mu.Lock()
	defer w.routes.mu.Unlock()
	wp, ok := w.routes.waypoints[id]
	if !ok {
		return nil, nil
	}
	copied := *wp
	return &copied, nil
}

var _ ports.RouteRepository = (*RouteRepository)(nil)
var _ ports.WaypointRepository = (*WaypointRepository)(nil)
