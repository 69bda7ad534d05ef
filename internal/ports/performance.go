package ports

import (
	"context"

	"waste-ops-service/internal/domain"
)

// Port: per-employee performance rows. FindByEmployee returns (nil, nil)
// before the first scoring event; the scoring engine creates the row
// lazily.
type PerformanceRepository interface {
	FindByEmployee(ctx context.Context, employeeID int64) (*domain.EmployeePerformance, error)
	Save(ctx context.Context, perf *domain.EmployeePerformance) (*domain.EmployeePerformance, error)
	List(ctx context.Context) ([]*domain.EmployeePerformance, error)
}
