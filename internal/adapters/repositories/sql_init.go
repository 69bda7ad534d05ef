package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createUsersQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL
	);
	`

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS routes (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		vehicle_id BIGINT,
		employee_id BIGINT REFERENCES users(id),
		schedule_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL
	);
	`

	createWaypointsQuery := `
	CREATE TABLE IF NOT EXISTS waypoints (
		id BIGSERIAL PRIMARY KEY,
		route_id BIGINT NOT NULL REFERENCES routes(id),
		sequence INTEGER NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		bin_id TEXT NOT NULL DEFAULT ''
	);
	`

	createCollectionRecordsQuery := `
	CREATE TABLE IF NOT EXISTS collection_records (
		id BIGSERIAL PRIMARY KEY,
		route_id BIGINT NOT NULL REFERENCES routes(id),
		waypoint_id BIGINT NOT NULL REFERENCES waypoints(id),
		employee_id BIGINT,
		status TEXT NOT NULL,
		collected_at TIMESTAMPTZ NOT NULL,
		collection_date DATE,
		photo_url TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		remark TEXT NOT NULL DEFAULT ''
	);
	`

	createAttendanceQuery := `
	CREATE TABLE IF NOT EXISTS attendance (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL,
		date DATE NOT NULL,
		status TEXT NOT NULL,
		check_in_time TIMESTAMPTZ,
		check_out_time TIMESTAMPTZ,
		remarks TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (employee_id, date)
	);
	`

	createPerformanceQuery := `
	CREATE TABLE IF NOT EXISTS employee_performance (
		id BIGSERIAL PRIMARY KEY,
		employee_id BIGINT NOT NULL UNIQUE,
		total_points INTEGER NOT NULL DEFAULT 0,
		monthly_points INTEGER NOT NULL DEFAULT 0,
		streak_days INTEGER NOT NULL DEFAULT 0,
		routes_completed INTEGER NOT NULL DEFAULT 0,
		complaints_resolved INTEGER NOT NULL DEFAULT 0,
		last_updated TIMESTAMPTZ NOT NULL,
		current_badge TEXT NOT NULL DEFAULT '',
		performance_level TEXT NOT NULL
	);
	`

	createComplaintsQuery := `
	CREATE TABLE IF NOT EXISTS complaints (
		id BIGSERIAL PRIMARY KEY,
		citizen_id BIGINT NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		photo_url TEXT NOT NULL DEFAULT '',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		priority TEXT NOT NULL,
		assigned_employee_id BIGINT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	`

	createBinsQuery := `
	CREATE TABLE IF NOT EXISTS smart_bins (
		id BIGSERIAL PRIMARY KEY,
		bin_id TEXT NOT NULL UNIQUE,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		capacity_liters INTEGER NOT NULL DEFAULT 0,
		current_fill_level DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		last_updated TIMESTAMPTZ NOT NULL
	);
	`

	createIndexesQuery := `
	CREATE INDEX IF NOT EXISTS idx_waypoints_route_sequence ON waypoints(route_id, sequence);
	CREATE INDEX IF NOT EXISTS idx_collection_records_employee_date ON collection_records(employee_id, collection_date);
	CREATE INDEX IF NOT EXISTS idx_routes_employee_schedule ON routes(employee_id, schedule_date);
	`

	statements := []string{
		createUsersQuery,
		createRoutesQuery,
		createWaypointsQuery,
		createCollectionRecordsQuery,
		createAttendanceQuery,
		createPerformanceQuery,
		createComplaintsQuery,
		createBinsQuery,
		createIndexesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type UserSeed struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type WaypointSeed struct {
	Sequence  int     `json:"sequence"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	BinID     string  `json:"bin_id"`
}

type RouteSeed struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	EmployeeID   *int64         `json:"employee_id"`
	ScheduleDate string         `json:"schedule_date"`
	Status       string         `json:"status"`
	Waypoints    []WaypointSeed `json:"waypoints"`
}

type BinSeed struct {
	BinID          string  `json:"bin_id"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	CapacityLiters int     `json:"capacity_liters"`
}

type Seed struct {
	Users  []UserSeed  `json:"users"`
	Routes []RouteSeed `json:"routes"`
	Bins   []BinSeed   `json:"bins"`
}

// Populate the database with demo data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var seed Seed
	if err := json.Unmarshal(bytes, &seed); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, u := range seed.Users {
		if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Email) == "" {
			return fmt.Errorf("seed: user at index %d: name and email are required", i+1)
		}
		_, err := tx.Exec(`
		INSERT INTO users (id, name, email, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, role = EXCLUDED.role;
		`, u.ID, u.Name, u.Email, u.Role)
		if err != nil {
			return fmt.Errorf("seed: insert user id=%d: %w", u.ID, err)
		}
	}

	for _, r := range seed.Routes {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("seed: route id=%d: name is required", r.ID)
		}

		status := r.Status
		if status == "" {
			status = "SCHEDULED"
		}

		_, err := tx.Exec(`
		INSERT INTO routes (id, name, description, employee_id, schedule_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING;
		`, r.ID, r.Name, r.Description, r.EmployeeID, r.ScheduleDate, status)
		if err != nil {
			return fmt.Errorf("seed: insert route id=%d: %w", r.ID, err)
		}

		for _, wp := range r.Waypoints {
			_, err := tx.Exec(`
			INSERT INTO waypoints (route_id, sequence, latitude, longitude, bin_id)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (
				SELECT 1 FROM waypoints WHERE route_id = $1 AND sequence = $2
			);
			`, r.ID, wp.Sequence, wp.Latitude, wp.Longitude, wp.BinID)
			if err != nil {
				return fmt.Errorf("seed: insert waypoint route=%d seq=%d: %w", r.ID, wp.Sequence, err)
			}
		}
	}

	for _, b := range seed.Bins {
		_, err := tx.Exec(`
		INSERT INTO smart_bins (bin_id, latitude, longitude, capacity_liters, current_fill_level, status, last_updated)
		VALUES ($1, $2, $3, $4, 0, 'NORMAL', NOW())
		ON CONFLICT (bin_id) DO NOTHING;
		`, b.BinID, b.Latitude, b.Longitude, b.CapacityLiters)
		if err != nil {
			return fmt.Errorf("seed: insert bin id=%q: %w", b.BinID, err)
		}
	}

	// Keep the id sequences ahead of seeded explicit ids.
	fixSequences := []string{
		`SELECT setval(pg_get_serial_sequence('users', 'id'), COALESCE(MAX(id), 1)) FROM users;`,
		`SELECT setval(pg_get_serial_sequence('routes', 'id'), COALESCE(MAX(id), 1)) FROM routes;`,
	}
	for _, stmt := range fixSequences {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("seed: advance sequence: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
