package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

type CollectionRecordRepository struct {
	mu      sync.Mutex
	nextID  int64
	records []*domain.CollectionRecord
}

func NewCollectionRecordRepository() *CollectionRecordRepository {
	return &CollectionRecordRepository{nextID: 1}
}

func (r *CollectionRecordRepository) Append(ctx context.Context, record *domain.CollectionRecord) (*domain.CollectionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.ID = r.nextID
	r.nextID++
	copied := *record
	r.records = append(r.records, &copied)
	return record, nil
}

func (r *CollectionRecordRepository) FindByID(ctx context.Context, id int64) (*domain.CollectionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *CollectionRecordRepository) ListByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) ([]*domain.CollectionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := domain.DateOf(date)
	var out []*domain.CollectionRecord
	for _, rec := range r.records {
		if rec.EmployeeID == nil || *rec.EmployeeID != employeeID {
			continue
		}
		if rec.CollectionDate == nil || !rec.CollectionDate.Equal(day) {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (r *CollectionRecordRepository) ListByRoute(ctx context.Context, routeID int64) ([]*domain.CollectionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CollectionRecord
	for _, rec := range r.records {
		if rec.RouteID == routeID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CollectionRecordRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records), nil
}

func (r *CollectionRecordRepository) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.EmployeeID != nil && *rec.EmployeeID == employeeID {
			n++
		}
	}
	return n, nil
}

var _ ports.CollectionRecordRepository = (*CollectionRecordRepository)(nil)
