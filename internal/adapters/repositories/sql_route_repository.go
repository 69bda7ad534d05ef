package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"waste-ops-service/internal/domain"
)

// Postgres-backed implementation of the RouteRepository port.
type SQLRouteRepository struct{ DB *sql.DB }

func NewSQLRouteRepository(db *sql.DB) *SQLRouteRepository {
	return &SQLRouteRepository{DB: db}
}

const routeColumns = `id, name, description, vehicle_id, employee_id, schedule_date, status`

func (s *SQLRouteRepository) FindByID(ctx context.Context, id int64) (*domain.Route, error) {
	if s.DB == nil {
		return nil, errors.New("route repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT `+routeColumns+`
	FROM routes
	WHERE id = $1;
	`, id)

	route, err := scanRoute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find route: id=%d: %w", id, err)
	}
	return route, nil
}

func (s *SQLRouteRepository) ListForEmployeeBetween(ctx context.Context, employeeID int64, start, end time.Time) ([]*domain.Route, error) {
	return s.queryRoutes(ctx, `
	SELECT `+routeColumns+`
	FROM routes
	WHERE employee_id = $1
		AND schedule_date >= $2
		AND schedule_date < $3
	ORDER BY schedule_date, id;
	`, employeeID, start, end)
}

func (s *SQLRouteRepository) ListForDate(ctx context.Context, date time.Time) ([]*domain.Route, error) {
	start, end := domain.DayWindow(date)
	return s.queryRoutes(ctx, `
	SELECT `+routeColumns+`
	FROM routes
	WHERE schedule_date >= $1
		AND schedule_date < $2
	ORDER BY schedule_date, id;
	`, start, end)
}

func (s *SQLRouteRepository) ListByStatus(ctx context.Context, status domain.RouteStatus) ([]*domain.Route, error) {
	return s.queryRoutes(ctx, `
	SELECT `+routeColumns+`
	FROM routes
	WHERE status = $1
	ORDER BY id;
	`, string(status))
}

func (s *SQLRouteRepository) CountForEmployee(ctx context.Context, employeeID int64) (int, error) {
	if s.DB == nil {
		return 0, errors.New("route repository: DB is nil")
	}

	var n int
	err := s.DB.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM routes WHERE employee_id = $1;
	`, employeeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count routes: employee=%d: %w", employeeID, err)
	}
	return n, nil
}

func (s *SQLRouteRepository) Create(ctx context.Context, route *domain.Route, waypoints []*domain.Waypoint) (*domain.Route, error) {
	if s.DB == nil {
		return nil, errors.New("route repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create route: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.QueryRowContext(ctx, `
	INSERT INTO routes (name, description, vehicle_id, employee_id, schedule_date, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;
	`, route.Name, route.Description, route.VehicleID, route.EmployeeID, route.ScheduleDate, string(route.Status)).Scan(&route.ID)
	if err != nil {
		return nil, fmt.Errorf("create route: insert: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO waypoints (route_id, sequence, latitude, longitude, bin_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id;
	`)
	if err != nil {
		return nil, fmt.Errorf("create route: prepare waypoint insert: %w", err)
	}
	defer stmt.Close()

	for _, wp := range waypoints {
		wp.RouteID = route.ID
		err := stmt.QueryRowContext(ctx, route.ID, wp.Sequence, wp.Location.Lat, wp.Location.Lng, wp.BinID).Scan(&wp.ID)
		if err != nil {
			return nil, fmt.Errorf("create route: insert waypoint seq=%d: %w", wp.Sequence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create route: commit tx: %w", err)
	}
	return route, nil
}

func (s *SQLRouteRepository) Save(ctx context.Context, route *domain.Route) error {
	if s.DB == nil {
		return errors.New("route repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `
	UPDATE routes
	SET name = $2, description = $3, vehicle_id = $4, employee_id = $5, schedule_date = $6, status = $7
	WHERE id = $1;
	`, route.ID, route.Name, route.Description, route.VehicleID, route.EmployeeID, route.ScheduleDate, string(route.Status))
	if err != nil {
		return fmt.Errorf("save route: id=%d: %w", route.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save route: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("save route: id=%d: %w", route.ID, domain.ErrNotFound)
	}
	return nil
}

func (s *SQLRouteRepository) List(ctx context.Context) ([]*domain.Route, error) {
	return s.queryRoutes(ctx, `
	SELECT `+routeColumns+`
	FROM routes
	ORDER BY id;
	`)
}

func (s *SQLRouteRepository) queryRoutes(ctx context.Context, query string, args ...any) ([]*domain.Route, error) {
	if s.DB == nil {
		return nil, errors.New("route repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list routes: query routes table: %w", err)
	}
	defer rows.Close()

	routes := make([]*domain.Route, 0, 16)
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("list routes: scan row: %w", err)
		}
		routes = append(routes, route)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}
	return routes, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoute(row rowScanner) (*domain.Route, error) {
	var (
		route      domain.Route
		vehicleID  sql.NullInt64
		employeeID sql.NullInt64
		status     string
	)
	err := row.Scan(&route.ID, &route.Name, &route.Description, &vehicleID, &employeeID, &route.ScheduleDate, &status)
	if err != nil {
		return nil, err
	}

	if vehicleID.Valid {
		route.VehicleID = &vehicleID.Int64
	}
	if employeeID.Valid {
		route.EmployeeID = &employeeID.Int64
	}
	route.Status = domain.RouteStatus(status)
	return &route, nil
}

// Postgres-backed implementation of the WaypointRepository port.
type SQLWaypointRepository struct{ DB *sql.DB }

func NewSQLWaypointRepository(db *sql.DB) *SQLWaypointRepository {
	return &SQLWaypointRepository{DB: db}
}

func (s *SQLWaypointRepository) ListByRoute(ctx context.Context, routeID int64) ([]*domain.Waypoint, error) {
	if s.DB == nil {
		return nil, errors.New("waypoint repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, route_id, sequence, latitude, longitude, bin_id
	FROM waypoints
	WHERE route_id = $1
	ORDER BY sequence;
	`, routeID)
	if err != nil {
		return nil, fmt.Errorf("list waypoints: route=%d: %w", routeID, err)
	}
	defer rows.Close()

	waypoints := make([]*domain.Waypoint, 0, 16)
	for rows.Next() {
		var wp domain.Waypoint
		if err := rows.Scan(&wp.ID, &wp.RouteID, &wp.Sequence, &wp.Location.Lat, &wp.Location.Lng, &wp.BinID); err != nil {
			return nil, fmt.Errorf("list waypoints: scan row: %w", err)
		}
		waypoints = append(waypoints, &wp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list waypoints: row iteration: %w", err)
	}
	return waypoints, nil
}

func (s *SQLWaypointRepository) FindByID(ctx context.Context, id int64) (*domain.Waypoint, error) {
	if s.DB == nil {
		return nil, errors.New("waypoint repository: DB is nil")
	}

	var wp domain.Waypoint
	err := s.DB.QueryRowContext(ctx, `
	SELECT id, route_id, sequence, latitude, longitude, bin_id
	FROM waypoints
	WHERE id = $1;
	`, id).Scan(&wp.ID, &wp.RouteID, &wp.Sequence, &wp.Location.Lat, &wp.Location.Lng, &wp.BinID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find waypoint: id=%d: %w", id, err)
	}
	return &wp, nil
}
