package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

type AttendanceRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Attendance
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{nextID: 1, rows: map[int64]*domain.Attendance{}}
}

func (r *AttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := domain.DateOf(date)
	for _, att := range r.rows {
		if att.EmployeeID == employeeID && att.Date.Equal(day) {
			copied := *att
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *AttendanceRepository) Save(ctx context.Context, att *domain.Attendance) (*domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if att.ID == 0 {
		att.ID = r.nextID
		r.nextID++
	}
	copied := *att
	r.rows[att.ID] = &copied
	return att, nil
}

func (r *AttendanceRepository) CountPresent(ctx context.Context, employeeID int64, start, end time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, att := range r.rows {
		if att.EmployeeID != employeeID || att.Status != domain.AttendancePresent {
			continue
		}
		if att.Date.Before(start) || att.Date.After(end) {
			continue
		}
		n++
	}
	return n, nil
}

func (r *AttendanceRepository) ListForDate(ctx context.Context, date time.Time) ([]*domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	day := domain.DateOf(date)
	var out []*domain.Attendance
	for _, att := range r.rows {
		if att.Date.Equal(day) {
			copied := *att
			out = append(out, &copied)
		}
	}
	sortAttendance(out)
	return out, nil
}

func (r *AttendanceRepository) ListForEmployee(ctx context.Context, employeeID int64) ([]*domain.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Attendance
	for _, att := range r.rows {
		if att.EmployeeID == employeeID {
			copied := *att
			out = append(out, &copied)
		}
	}
	sortAttendance(out)
	return out, nil
}

// All returns every stored row, for test assertions.
func (r *AttendanceRepository) All() []*domain.Attendance {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Attendance, 0, len(r.rows))
	for _, att := range r.rows {
		copied := *att
		out = append(out, &copied)
	}
	sortAttendance(out)
	return out
}

func sortAttendance(rows []*domain.Attendance) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}

var _ ports.AttendanceRepository = (*AttendanceRepository)(nil)
