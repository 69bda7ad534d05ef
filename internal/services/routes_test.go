package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"waste-ops-service/internal/adapters/notify"
	"waste-ops-service/internal/adapters/repositories/memory"
	"waste-ops-service/internal/domain"
)

func newRouteFixture(t *testing.T) (*RouteService, *memory.RouteRepository, *memory.CollectionRecordRepository, *notify.CaptureNotifier) {
	t.Helper()

	routes := memory.NewRouteRepository()
	collections := memory.NewCollectionRecordRepository()
	notifier := notify.NewCaptureNotifier()
	svc := NewRouteService(routes, routes.Waypoints(), collections, notifier)
	return svc, routes, collections, notifier
}

func seedRoute(t *testing.T, routes *memory.RouteRepository, employeeID int64, day time.Time) *domain.Route {
	t.Helper()

	eid := employeeID
	route, err := routes.Create(context.Background(), &domain.Route{
		Name:         "Ward 12 Morning Run",
		EmployeeID:   &eid,
		ScheduleDate: day,
		Status:       domain.RouteScheduled,
	}, []*domain.Waypoint{
		{Sequence: 2, Location: domain.Coordinates{Lat: 12.9721, Lng: 77.5933}},
		{Sequence: 1, Location: domain.Coordinates{Lat: 12.9716, Lng: 77.5946}},
		{Sequence: 3, Location: domain.Coordinates{Lat: 12.9735, Lng: 77.5911}},
	})
	if err != nil {
		t.Fatalf("seed route: %v", err)
	}
	return route
}

func TestGetRouteWaypointsSorted(t *testing.T) {
	svc, routes, _, _ := newRouteFixture(t)
	route := seedRoute(t, routes, 3, time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC))

	wps, err := svc.GetRouteWaypoints(context.Background(), route.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wps) != 3 {
		t.Fatalf("expected 3 waypoints, got %d", len(wps))
	}
	for i, wp := range wps {
		if wp.Sequence != i+1 {
			t.Fatalf("waypoint %d has sequence %d", i, wp.Sequence)
		}
	}
}

func TestUpdateCollectionStatusAppends(t *testing.T) {
	svc, routes, collections, _ := newRouteFixture(t)
	route := seedRoute(t, routes, 3, time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC))

	wps, err := svc.GetRouteWaypoints(context.Background(), route.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := svc.UpdateCollectionStatus(
		context.Background(),
		route.ID, wps[0].ID,
		domain.CollectionSkipped,
		"http://photos/1.jpg",
		12.97, 77.59,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.Status != domain.CollectionSkipped {
		t.Fatalf("status = %s, want SKIPPED", rec.Status)
	}
	if rec.CollectionDate != nil {
		t.Fatal("per-stop updates must not set the collection date")
	}
	if rec.EmployeeID == nil || *rec.EmployeeID != 3 {
		t.Fatalf("employee = %v, want 3", rec.EmployeeID)
	}

	history, err := collections.ListByRoute(context.Background(), route.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 record, got %d", len(history))
	}
}

func TestUpdateCollectionStatusWrongRoute(t *testing.T) {
	svc, routes, _, _ := newRouteFixture(t)
	day := time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC)
	first := seedRoute(t, routes, 3, day)
	second := seedRoute(t, routes, 4, day)

	wps, err := svc.GetRouteWaypoints(context.Background(), second.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.UpdateCollectionStatus(context.Background(), first.ID, wps[0].ID, domain.CollectionCollected, "", 0, 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompleteRouteWritesRecordPerWaypoint(t *testing.T) {
	svc, routes, collections, notifier := newRouteFixture(t)
	route := seedRoute(t, routes, 3, time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC))

	done := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	svc.now = fixedClock(done)

	if err := svc.CompleteRoute(context.Background(), route.ID, "all clear", "http://photos/route.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved, err := routes.FindByID(context.Background(), route.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Status != domain.RouteCompleted {
		t.Fatalf("status = %s, want COMPLETED", saved.Status)
	}

	records, err := collections.ListByRoute(context.Background(), route.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	today := domain.DateOf(done)
	for _, rec := range records {
		if rec.Status != domain.CollectionCollected {
			t.Fatalf("record %d status = %s, want COLLECTED", rec.ID, rec.Status)
		}
		if rec.CollectionDate == nil || !rec.CollectionDate.Equal(today) {
			t.Fatalf("record %d collection date = %v, want %v", rec.ID, rec.CollectionDate, today)
		}
		if rec.Remark != "all clear" {
			t.Fatalf("record %d remark = %q", rec.ID, rec.Remark)
		}
		if rec.Location == (domain.Coordinates{}) {
			t.Fatalf("record %d missing waypoint coordinates", rec.ID)
		}
	}

	events := notifier.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Topic != "/topic/routes" {
		t.Fatalf("topic = %q", events[0].Topic)
	}
}

func TestCompleteRouteTwice(t *testing.T) {
	svc, routes, _, _ := newRouteFixture(t)
	route := seedRoute(t, routes, 3, time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC))

	if err := svc.CompleteRoute(context.Background(), route.ID, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := svc.CompleteRoute(context.Background(), route.ID, "", "")
	if !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestCompleteRouteUnknown(t *testing.T) {
	svc, _, _, _ := newRouteFixture(t)

	err := svc.CompleteRoute(context.Background(), 99, "", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetEmployeeRoutesForDay(t *testing.T) {
	svc, routes, _, _ := newRouteFixture(t)
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	seedRoute(t, routes, 3, day.Add(6*time.Hour))
	seedRoute(t, routes, 4, day.Add(7*time.Hour))
	seedRoute(t, routes, 3, day.AddDate(0, 0, 1))

	eid := int64(3)
	mine, err := svc.GetEmployeeRoutesForDay(context.Background(), &eid, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 route for employee 3, got %d", len(mine))
	}

	all, err := svc.GetEmployeeRoutesForDay(context.Background(), nil, day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 routes for the day, got %d", len(all))
	}
}

func TestGetEmployeeCollectionsForDay(t *testing.T) {
	svc, routes, _, _ := newRouteFixture(t)
	route := seedRoute(t, routes, 3, time.Date(2026, 3, 9, 6, 0, 0, 0, time.UTC))

	wps, err := svc.GetRouteWaypoints(context.Background(), route.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	done := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	svc.now = fixedClock(done)

	// A per-stop update has no collection date, so it must not show up
	// in the day view.
	if _, err := svc.UpdateCollectionStatus(context.Background(), route.ID, wps[0].ID, domain.CollectionSkipped, "", 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.CompleteRoute(context.Background(), route.ID, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := svc.GetEmployeeCollectionsForDay(context.Background(), 3, done)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 dated records, got %d", len(records))
	}
}

func TestCreateRouteDefaultsToScheduled(t *testing.T) {
	svc, _, _, _ := newRouteFixture(t)

	created, err := svc.CreateRoute(context.Background(), &domain.Route{
		Name:         "Market District Sweep",
		ScheduleDate: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC),
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != domain.RouteScheduled {
		t.Fatalf("status = %s, want SCHEDULED", created.Status)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
}
