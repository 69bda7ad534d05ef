package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"waste-ops-service/internal/domain"
)

// Postgres-backed implementation of the PerformanceRepository port.
// The UNIQUE employee_id constraint keeps the row one-to-one; Save
// upserts so a lazily-created row and a concurrent first award cannot
// produce duplicates.
type SQLPerformanceRepository struct{ DB *sql.DB }

func NewSQLPerformanceRepository(db *sql.DB) *SQLPerformanceRepository {
	return &SQLPerformanceRepository{DB: db}
}

const performanceColumns = `id, employee_id, total_points, monthly_points, streak_days, routes_completed, complaints_resolved, last_updated, current_badge, performance_level`

func (s *SQLPerformanceRepository) FindByEmployee(ctx context.Context, employeeID int64) (*domain.EmployeePerformance, error) {
	if s.DB == nil {
		return nil, errors.New("performance repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT `+performanceColumns+`
	FROM employee_performance
	WHERE employee_id = $1;
	`, employeeID)

	perf, err := scanPerformance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find performance: employee=%d: %w", employeeID, err)
	}
	return perf, nil
}

func (s *SQLPerformanceRepository) Save(ctx context.Context, perf *domain.EmployeePerformance) (*domain.EmployeePerformance, error) {
	if s.DB == nil {
		return nil, errors.New("performance repository: DB is nil")
	}

	err := s.DB.QueryRowContext(ctx, `
	INSERT INTO employee_performance (employee_id, total_points, monthly_points, streak_days, routes_completed, complaints_resolved, last_updated, current_badge, performance_level)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (employee_id) DO UPDATE
	SET total_points = EXCLUDED.total_points,
		monthly_points = EXCLUDED.monthly_points,
		streak_days = EXCLUDED.streak_days,
		routes_completed = EXCLUDED.routes_completed,
		complaints_resolved = EXCLUDED.complaints_resolved,
		last_updated = EXCLUDED.last_updated,
		current_badge = EXCLUDED.current_badge,
		performance_level = EXCLUDED.performance_level
	RETURNING id;
	`,
		perf.EmployeeID,
		perf.TotalPoints,
		perf.MonthlyPoints,
		perf.StreakDays,
		perf.RoutesCompleted,
		perf.ComplaintsResolved,
		perf.LastUpdated,
		perf.CurrentBadge,
		string(perf.PerformanceLevel),
	).Scan(&perf.ID)
	if err != nil {
		return nil, fmt.Errorf("save performance: employee=%d: %w", perf.EmployeeID, err)
	}
	return perf, nil
}

func (s *SQLPerformanceRepository) List(ctx context.Context) ([]*domain.EmployeePerformance, error) {
	if s.DB == nil {
		return nil, errors.New("performance repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT `+performanceColumns+`
	FROM employee_performance
	ORDER BY employee_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list performance: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.EmployeePerformance, 0, 16)
	for rows.Next() {
		perf, err := scanPerformance(rows)
		if err != nil {
			return nil, fmt.Errorf("list performance: scan row: %w", err)
		}
		out = append(out, perf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list performance: row iteration: %w", err)
	}
	return out, nil
}

func scanPerformance(row rowScanner) (*domain.EmployeePerformance, error) {
	var (
		perf  domain.EmployeePerformance
		level string
	)
	err := row.Scan(
		&perf.ID,
		&perf.EmployeeID,
		&perf.TotalPoints,
		&perf.MonthlyPoints,
		&perf.StreakDays,
		&perf.RoutesCompleted,
		&perf.ComplaintsResolved,
		&perf.LastUpdated,
		&perf.CurrentBadge,
		&level,
	)
	if err != nil {
		return nil, err
	}

	perf.PerformanceLevel = domain.PerformanceLevel(level)
	return &perf, nil
}
