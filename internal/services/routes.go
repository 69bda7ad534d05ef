package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

// RouteService owns route status transitions, waypoint listing, and the
// append-only collection history. Completing a route does not award
// points itself; scoring is invoked by the caller through the
// gamification service.
type RouteService struct {
	routes      ports.RouteRepository
	waypoints   ports.WaypointRepository
	collections ports.CollectionRecordRepository
	notifier    ports.Notifier
	now         func() time.Time
}

func NewRouteService(
	routes ports.RouteRepository,
	waypoints ports.WaypointRepository,
	collections ports.CollectionRecordRepository,
	notifier ports.Notifier,
) *RouteService {
	return &RouteService{
		routes:      routes,
		waypoints:   waypoints,
		collections: collections,
		notifier:    notifier,
		now:         time.Now,
	}
}

// GetEmployeeRoutesForDay returns an employee's routes whose schedule
// timestamp falls on the given calendar day. With a nil employeeID it
// returns every route scheduled that day (the citizen-facing view).
func (s *RouteService) GetEmployeeRoutesForDay(ctx context.Context, employeeID *int64, date time.Time) ([]*domain.Route, error) {
	if employeeID != nil {
		start, end := domain.DayWindow(date)
		routes, err := s.routes.ListForEmployeeBetween(ctx, *employeeID, start, end)
		if err != nil {
			return nil, fmt.Errorf("routes for day: employee=%d: %w", *employeeID, err)
		}
		return routes, nil
	}

	routes, err := s.routes.ListForDate(ctx, domain.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("routes for day: all employees: %w", err)
	}
	return routes, nil
}

// GetRouteWaypoints returns the route's stops sorted ascending by
// sequence number.
func (s *RouteService) GetRouteWaypoints(ctx context.Context, routeID int64) ([]*domain.Waypoint, error) {
	wps, err := s.waypoints.ListByRoute(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("route waypoints: route=%d: %w", routeID, err)
	}
	return wps, nil
}

// UpdateCollectionStatus appends one outcome record for a single stop.
// Route and waypoint state are untouched; repeated calls for the same
// waypoint all land in the history.
func (s *RouteService) UpdateCollectionStatus(
	ctx context.Context,
	routeID, waypointID int64,
	status domain.CollectionStatus,
	photoURL string,
	lat, lng float64,
) (*domain.CollectionRecord, error) {
	route, err := s.routes.FindByID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("update collection: find route=%d: %w", routeID, err)
	}
	if route == nil {
		return nil, fmt.Errorf("update collection: route=%d: %w", routeID, domain.ErrNotFound)
	}

	wp, err := s.waypoints.FindByID(ctx, waypointID)
	if err != nil {
		return nil, fmt.Errorf("update collection: find waypoint=%d: %w", waypointID, err)
	}
	if wp == nil || wp.RouteID != routeID {
		return nil, fmt.Errorf("update collection: waypoint=%d on route=%d: %w", waypointID, routeID, domain.ErrNotFound)
	}

	record := &domain.CollectionRecord{
		RouteID:     routeID,
		WaypointID:  waypointID,
		EmployeeID:  route.EmployeeID,
		Status:      status,
		CollectedAt: s.now(),
		PhotoURL:    photoURL,
		Location:    domain.Coordinates{Lat: lat, Lng: lng},
	}

	saved, err := s.collections.Append(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("update collection: append record: %w", err)
	}
	return saved, nil
}

// CompleteRoute transitions the route to COMPLETED (terminal) and
// appends one COLLECTED record per waypoint in sequence order, with
// coordinates copied from the waypoint and the shared remark and photo
// attached to every record. Completing an already-completed route fails
// with ErrInvalidState.
func (s *RouteService) CompleteRoute(ctx context.Context, routeID int64, remark, photoURL string) error {
	route, err := s.routes.FindByID(ctx, routeID)
	if err != nil {
		return fmt.Errorf("complete route: find route=%d: %w", routeID, err)
	}
	if route == nil {
		return fmt.Errorf("complete route: route=%d: %w", routeID, domain.ErrNotFound)
	}
	if route.Status == domain.RouteCompleted {
		return fmt.Errorf("complete route: route=%d already completed: %w", routeID, domain.ErrInvalidState)
	}

	route.Status = domain.RouteCompleted
	if err := s.routes.Save(ctx, route); err != nil {
		return fmt.Errorf("complete route: save route=%d: %w", routeID, err)
	}

	wps, err := s.waypoints.ListByRoute(ctx, routeID)
	if err != nil {
		return fmt.Errorf("complete route: list waypoints route=%d: %w", routeID, err)
	}

	now := s.now()
	today := domain.DateOf(now)
	for _, wp := range wps {
		record := &domain.CollectionRecord{
			RouteID:        routeID,
			WaypointID:     wp.ID,
			EmployeeID:     route.EmployeeID,
			Status:         domain.CollectionCollected,
			CollectedAt:    now,
			CollectionDate: &today,
			PhotoURL:       photoURL,
			Location:       wp.Location,
			Remark:         remark,
		}
		if _, err := s.collections.Append(ctx, record); err != nil {
			return fmt.Errorf("complete route: append record waypoint=%d: %w", wp.ID, err)
		}
	}

	s.publishRouteUpdate(ctx, route)
	return nil
}

// GetEmployeeCollectionsForDay returns the records whose collection
// date (calendar day, not timestamp) equals the given date.
func (s *RouteService) GetEmployeeCollectionsForDay(ctx context.Context, employeeID int64, date time.Time) ([]*domain.CollectionRecord, error) {
	records, err := s.collections.ListByEmployeeAndDate(ctx, employeeID, domain.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("collections for day: employee=%d: %w", employeeID, err)
	}
	return records, nil
}

// CreateRoute persists a dispatcher-created route with its waypoints.
// Waypoints are immutable afterwards.
func (s *RouteService) CreateRoute(ctx context.Context, route *domain.Route, waypoints []*domain.Waypoint) (*domain.Route, error) {
	if route.Status == "" {
		route.Status = domain.RouteScheduled
	}
	created, err := s.routes.Create(ctx, route, waypoints)
	if err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}
	return created, nil
}

// ListRoutes returns all routes.
func (s *RouteService) ListRoutes(ctx context.Context) ([]*domain.Route, error) {
	routes, err := s.routes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routes, nil
}

// ListRoutesByStatus returns routes in one lifecycle state.
func (s *RouteService) ListRoutesByStatus(ctx context.Context, status domain.RouteStatus) ([]*domain.Route, error) {
	routes, err := s.routes.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list routes by status: %w", err)
	}
	return routes, nil
}

func (s *RouteService) publishRouteUpdate(ctx context.Context, route *domain.Route) {
	payload := map[string]any{
		"routeId": route.ID,
		"status":  route.Status,
	}
	if route.EmployeeID != nil {
		payload["employeeId"] = *route.EmployeeID
	}

	event := ports.Event{
		Type:      ports.EventRouteUpdate,
		Topic:     "/topic/routes",
		Payload:   payload,
		Timestamp: s.now(),
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		log.Printf("publish route update failed: route=%d err=%v", route.ID, err)
	}
}
