package memory

import (
	"context"
	"sort"
	"sync"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

type BinRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]*domain.SmartBin // keyed by external bin id
}

func NewBinRepository(bins ...*domain.SmartBin) *BinRepository {
	r := &BinRepository{nextID: 1, rows: map[string]*domain.SmartBin{}}
	for _, b := range bins {
		copied := *b
		if copied.ID == 0 {
			copied.ID = r.nextID
			r.nextID++
		}
		r.rows[b.BinID] = &copied
	}
	return r
}

func (r *BinRepository) FindByBinID(ctx context.Context, binID string) (*domain.SmartBin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[binID]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (r *BinRepository) Save(ctx context.Context, bin *domain.SmartBin) (*domain.SmartBin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if bin.ID == 0 {
		bin.ID = r.nextID
		r.nextID++
	}
	copied := *bin
	r.rows[bin.BinID] = &copied
	return bin, nil
}

func (r *BinRepository) List(ctx context.Context) ([]*domain.SmartBin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.SmartBin, 0, len(r.rows))
	for _, b := range r.rows {
		copied := *b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BinID < out[j].BinID })
	return out, nil
}

var _ ports.BinRepository = (*BinRepository)(nil)
