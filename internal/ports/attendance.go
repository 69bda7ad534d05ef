package ports

import (
	"context"
	"time"

	"waste-ops-service/internal/domain"
)

// Port: attendance row storage. FindByEmployeeAndDate returns (nil, nil)
// when the employee has no row for that day.
type AttendanceRepository interface {
	FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Attendance, error)
	// Save inserts when the id is zero and updates otherwise; the
	// (employee, date) uniqueness invariant is enforced by the store.
	Save(ctx context.Context, att *domain.Attendance) (*domain.Attendance, error)
	CountPresent(ctx context.Context, employeeID int64, start, end time.Time) (int, error)
	ListForDate(ctx context.Context, date time.Time) ([]*domain.Attendance, error)
	ListForEmployee(ctx context.Context, employeeID int64) ([]*domain.Attendance, error)
}
