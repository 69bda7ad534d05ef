package ports

import (
	"context"

	"waste-ops-service/internal/domain"
)

// Port: lookup of employees and other identities. The attendance sweep
// takes its roster from here rather than deriving it from historical
// attendance rows, so first-day absentees are covered.
type EmployeeDirectory interface {
	FindEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	// All users with the EMPLOYEE role.
	ListActiveEmployees(ctx context.Context) ([]*domain.Employee, error)
	CountByRole(ctx context.Context, role domain.Role) (int, error)
}
