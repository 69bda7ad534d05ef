package memory

import (
	"context"
	"sync"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

type EmployeeDirectory struct {
	mu    sync.Mutex
	users map[int64]*domain.Employee
}

func NewEmployeeDirectory(users ...*domain.Employee) *EmployeeDirectory {
	d := &EmployeeDirectory{users: map[int64]*domain.Employee{}}
	for _, u := range users {
		copied := *u
		d.users[u.ID] = &copied
	}
	return d
}

func (d *EmployeeDirectory) FindEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (d *EmployeeDirectory) ListActiveEmployees(ctx context.Context) ([]*domain.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []*domain.Employee
	for _, u := range d.users {
		if u.Role == domain.RoleEmployee {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (d *EmployeeDirectory) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, u := range d.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

var _ ports.EmployeeDirectory = (*EmployeeDirectory)(nil)
