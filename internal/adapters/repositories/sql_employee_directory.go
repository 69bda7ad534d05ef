package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"waste-ops-service/internal/domain"
)

// Postgres-backed implementation of the EmployeeDirectory port, reading
// the users table owned by the auth collaborator.
type SQLEmployeeDirectory struct{ DB *sql.DB }

func NewSQLEmployeeDirectory(db *sql.DB) *SQLEmployeeDirectory {
	return &SQLEmployeeDirectory{DB: db}
}

func (s *SQLEmployeeDirectory) FindEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	if s.DB == nil {
		return nil, errors.New("employee directory: DB is nil")
	}

	var (
		emp  domain.Employee
		role string
	)
	err := s.DB.QueryRowContext(ctx, `
	SELECT id, name, role
	FROM users
	WHERE id = $1;
	`, id).Scan(&emp.ID, &emp.Name, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find employee: id=%d: %w", id, err)
	}

	emp.Role = domain.Role(role)
	return &emp, nil
}

func (s *SQLEmployeeDirectory) ListActiveEmployees(ctx context.Context) ([]*domain.Employee, error) {
	if s.DB == nil {
		return nil, errors.New("employee directory: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, name, role
	FROM users
	WHERE role = $1
	ORDER BY id;
	`, string(domain.RoleEmployee))
	if err != nil {
		return nil, fmt.Errorf("list employees: query users table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Employee, 0, 32)
	for rows.Next() {
		var (
			emp  domain.Employee
			role string
		)
		if err := rows.Scan(&emp.ID, &emp.Name, &role); err != nil {
			return nil, fmt.Errorf("list employees: scan row: %w", err)
		}
		emp.Role = domain.Role(role)
		out = append(out, &emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list employees: row iteration: %w", err)
	}
	return out, nil
}

func (s *SQLEmployeeDirectory) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	if s.DB == nil {
		return 0, errors.New("employee directory: DB is nil")
	}

	var n int
	err := s.DB.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM users WHERE role = $1;
	`, string(role)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users by role: role=%s: %w", role, err)
	}
	return n, nil
}
