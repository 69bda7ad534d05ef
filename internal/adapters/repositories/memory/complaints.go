package memory

import (
	"context"
	"sort"
	"sync"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

type ComplaintRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Complaint
}

func NewComplaintRepository() *ComplaintRepository {
	return &ComplaintRepository{nextID: 1, rows: map[int64]*domain.Complaint{}}
}

func (r *ComplaintRepository) FindByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *ComplaintRepository) Save(ctx context.Context, c *domain.Complaint) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	}
	copied := *c
	r.rows[c.ID] = &copied
	return c, nil
}

func (r *ComplaintRepository) ListByCitizen(ctx context.Context, citizenID int64) ([]*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Complaint
	for _, c := range r.rows {
		if c.CitizenID == citizenID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sortComplaints(out)
	return out, nil
}

func (r *ComplaintRepository) ListByStatus(ctx context.Context, status domain.ComplaintStatus) ([]*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Complaint
	for _, c := range r.rows {
		if c.Status == status {
			copied := *c
			out = append(out, &copied)
		}
	}
	sortComplaints(out)
	return out, nil
}

func (r *ComplaintRepository) List(ctx context.Context) ([]*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Complaint, 0, len(r.rows))
	for _, c := range r.rows {
		copied := *c
		out = append(out, &copied)
	}
	sortComplaints(out)
	return out, nil
}

func sortComplaints(rows []*domain.Complaint) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}

var _ ports.ComplaintRepository = (*ComplaintRepository)(nil)
