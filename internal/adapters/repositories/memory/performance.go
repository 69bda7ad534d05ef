package memory

import (
	"context"
	"sort"
	"sync"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

type PerformanceRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.EmployeePerformance // keyed by employee id

	// SaveErr, when set, is returned by Save. Lets tests exercise the
	// no-silent-retry contract.
	SaveErr error
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{nextID: 1, rows: map[int64]*domain.EmployeePerformance{}}
}

func (r *PerformanceRepository) FindByEmployee(ctx context.Context, employeeID int64) (*domain.EmployeePerformance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	perf, ok := r.rows[employeeID]
	if !ok {
		return nil, nil
	}
	copied := *perf
	return &copied, nil
}

func (r *PerformanceRepository) Save(ctx context.Context, perf *domain.EmployeePerformance) (*domain.EmployeePerformance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return nil, r.SaveErr
	}
	if perf.ID == 0 {
		perf.ID = r.nextID
		r.nextID++
	}
	copied := *perf
	r.rows[perf.EmployeeID] = &copied
	return perf, nil
}

func (r *PerformanceRepository) List(ctx context.Context) ([]*domain.EmployeePerformance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.EmployeePerformance, 0, len(r.rows))
	for _, perf := range r.rows {
		copied := *perf
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

var _ ports.PerformanceRepository = (*PerformanceRepository)(nil)
