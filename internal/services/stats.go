package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

// StatsProvider computes the dashboard numbers for one role. Keying
// providers by role keeps role branching out of call sites.
type StatsProvider interface {
	ComputeStats(ctx context.Context, user *domain.Employee) (map[string]any, error)
}

// StatsService dispatches dashboard requests to the provider registered
// for the caller's role, with a short-TTL cache in front. Cache errors
// are treated as misses.
type StatsService struct {
	providers map[domain.Role]StatsProvider
	cache     ports.StatsCache
	ttl       time.Duration
}

func NewStatsService(providers map[domain.Role]StatsProvider, cache ports.StatsCache, ttl time.Duration) *StatsService {
	return &StatsService{
		providers: providers,
		cache:     cache,
		ttl:       ttl,
	}
}

// DashboardStats computes (or serves cached) stats for the given user.
func (s *StatsService) DashboardStats(ctx context.Context, user *domain.Employee) (map[string]any, error) {
	key := fmt.Sprintf("stats:%s:%d", user.Role, user.ID)

	if s.cache != nil {
		cached, ok, err := s.cache.GetStats(ctx, key)
		if err != nil {
			log.Printf("stats cache get failed: key=%s err=%v", key, err)
		} else if ok {
			return cached, nil
		}
	}

	provider, ok := s.providers[user.Role]
	if !ok {
		// Unknown roles get the citizen view, the least privileged one.
		provider, ok = s.providers[domain.RoleCitizen]
		if !ok {
			return nil, fmt.Errorf("dashboard stats: no provider for role %q", user.Role)
		}
	}

	stats, err := provider.ComputeStats(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: role=%s: %w", user.Role, err)
	}

	if s.cache != nil {
		if err := s.cache.PutStats(ctx, key, stats, s.ttl); err != nil {
			log.Printf("stats cache put failed: key=%s err=%v", key, err)
		}
	}
	return stats, nil
}

// AdminStatsProvider serves the full operational view for admins and
// supervisors.
type AdminStatsProvider struct {
	Collections ports.CollectionRecordRepository
	Routes      ports.RouteRepository
	Complaints  ports.ComplaintRepository
	Directory   ports.EmployeeDirectory
	Performance ports.PerformanceRepository
}

func (p *AdminStatsProvider) ComputeStats(ctx context.Context, user *domain.Employee) (map[string]any, error) {
	totalCollections, err := p.Collections.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin stats: count collections: %w", err)
	}

	active, err := p.Routes.ListByStatus(ctx, domain.RouteInProgress)
	if err != nil {
		return nil, fmt.Errorf("admin stats: list active routes: %w", err)
	}

	pending, err := p.Complaints.ListByStatus(ctx, domain.ComplaintPending)
	if err != nil {
		return nil, fmt.Errorf("admin stats: list pending complaints: %w", err)
	}

	employees, err := p.Directory.CountByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("admin stats: count employees: %w", err)
	}

	avg, err := averagePerformanceScore(ctx, p.Performance)
	if err != nil {
		return nil, fmt.Errorf("admin stats: %w", err)
	}

	return map[string]any{
		"totalCollections":    totalCollections,
		"activeRoutes":        len(active),
		"pendingComplaints":   len(pending),
		"totalEmployees":      employees,
		"employeePerformance": avg,
	}, nil
}

// EmployeeStatsProvider serves an employee's own workload and
// current-month attendance.
type EmployeeStatsProvider struct {
	Routes      ports.RouteRepository
	Collections ports.CollectionRecordRepository
	Complaints  ports.ComplaintRepository
	Performance ports.PerformanceRepository
	Attendance  *AttendanceService
	Now         func() time.Time
}

func (p *EmployeeStatsProvider) ComputeStats(ctx context.Context, user *domain.Employee) (map[string]any, error) {
	assigned, err := p.Routes.CountForEmployee(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("employee stats: count routes: %w", err)
	}

	collected, err := p.Collections.CountByEmployee(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("employee stats: count collections: %w", err)
	}

	pending, err := p.Complaints.ListByStatus(ctx, domain.ComplaintPending)
	if err != nil {
		return nil, fmt.Errorf("employee stats: list pending complaints: %w", err)
	}

	now := time.Now()
	if p.Now != nil {
		now = p.Now()
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	attendance, err := p.Attendance.GetEmployeeAttendanceStats(ctx, user.ID, monthStart, now)
	if err != nil {
		return nil, fmt.Errorf("employee stats: %w", err)
	}

	avg, err := averagePerformanceScore(ctx, p.Performance)
	if err != nil {
		return nil, fmt.Errorf("employee stats: %w", err)
	}

	return map[string]any{
		"assignedRoutes":       assigned,
		"completedCollections": collected,
		"pendingComplaints":    len(pending),
		"employeePerformance":  avg,
		"attendance": map[string]any{
			"daysPresent":          attendance.DaysPresent,
			"workingDays":          attendance.WorkingDays,
			"attendancePercentage": attendance.AttendancePercentage,
		},
	}, nil
}

// CitizenStatsProvider serves a citizen's complaint counts and the
// day's active routes.
type CitizenStatsProvider struct {
	Complaints  ports.ComplaintRepository
	Routes      ports.RouteRepository
	Performance ports.PerformanceRepository
}

func (p *CitizenStatsProvider) ComputeStats(ctx context.Context, user *domain.Employee) (map[string]any, error) {
	mine, err := p.Complaints.ListByCitizen(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("citizen stats: list complaints: %w", err)
	}

	var resolved, pending int
	for _, c := range mine {
		switch c.Status {
		case domain.ComplaintResolved:
			resolved++
		case domain.ComplaintPending:
			pending++
		}
	}

	active, err := p.Routes.ListByStatus(ctx, domain.RouteInProgress)
	if err != nil {
		return nil, fmt.Errorf("citizen stats: list active routes: %w", err)
	}

	avg, err := averagePerformanceScore(ctx, p.Performance)
	if err != nil {
		return nil, fmt.Errorf("citizen stats: %w", err)
	}

	return map[string]any{
		"myComplaints":        len(mine),
		"resolvedComplaints":  resolved,
		"pendingComplaints":   pending,
		"activeRoutes":        len(active),
		"employeePerformance": avg,
	}, nil
}

// averagePerformanceScore maps levels to a 0-100 score and averages
// across all employees with a performance row.
func averagePerformanceScore(ctx context.Context, repo ports.PerformanceRepository) (int, error) {
	perfs, err := repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("average performance: %w", err)
	}
	if len(perfs) == 0 {
		return 0, nil
	}

	scores := map[domain.PerformanceLevel]float64{
		domain.LevelBronze:   20,
		domain.LevelSilver:   40,
		domain.LevelGold:     60,
		domain.LevelPlatinum: 80,
		domain.LevelDiamond:  100,
	}

	var sum float64
	for _, p := range perfs {
		sum += scores[p.PerformanceLevel]
	}
	return int(math.Round(sum / float64(len(perfs)))), nil
}
