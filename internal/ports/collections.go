package ports

import (
	"context"
	"time"

	"waste-ops-service/internal/domain"
)

// Port: append-only store of collection outcomes.
type CollectionRecordRepository interface {
	// Append persists a new record and assigns its id. Records are
	// never updated after creation.
	Append(ctx context.Context, record *domain.CollectionRecord) (*domain.CollectionRecord, error)
	FindByID(ctx context.Context, id int64) (*domain.CollectionRecord, error)
	// Records for one employee whose collection date equals the given
	// calendar day.
	ListByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) ([]*domain.CollectionRecord, error)
	ListByRoute(ctx context.Context, routeID int64) ([]*domain.CollectionRecord, error)
	Count(ctx context.Context) (int, error)
	CountByEmployee(ctx context.Context, employeeID int64) (int, error)
}
