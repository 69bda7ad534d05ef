package services

import (
	"context"
	"testing"
	"time"

	"waste-ops-service/internal/adapters/repositories/memory"
	"waste-ops-service/internal/domain"
)

// mapStatsCache is an in-process cache for dispatch tests; expiry is
// covered by the redis adapter tests.
type mapStatsCache struct {
	entries map[string]map[string]any
	puts    int
}

func newMapStatsCache() *mapStatsCache {
	return &mapStatsCache{entries: make(map[string]map[string]any)}
}

func (c *mapStatsCache) GetStats(ctx context.Context, key string) (map[string]any, bool, error) {
	stats, ok := c.entries[key]
	return stats, ok, nil
}

func (c *mapStatsCache) PutStats(ctx context.Context, key string, stats map[string]any, ttl time.Duration) error {
	c.entries[key] = stats
	c.puts++
	return nil
}

func newStatsFixture(cache *mapStatsCache) (*StatsService, *memory.ComplaintRepository) {
	routes := memory.NewRouteRepository()
	collections := memory.NewCollectionRecordRepository()
	complaints := memory.NewComplaintRepository()
	performance := memory.NewPerformanceRepository()
	directory := memory.NewEmployeeDirectory(
		&domain.Employee{ID: 3, Name: "Meera", Role: domain.RoleEmployee},
	)
	attendance := NewAttendanceService(memory.NewAttendanceRepository(), directory)

	admin := &AdminStatsProvider{
		Collections: collections,
		Routes:      routes,
		Complaints:  complaints,
		Directory:   directory,
		Performance: performance,
	}
	employee := &EmployeeStatsProvider{
		Routes:      routes,
		Collections: collections,
		Complaints:  complaints,
		Performance: performance,
		Attendance:  attendance,
		Now:         fixedClock(time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)),
	}
	citizen := &CitizenStatsProvider{
		Complaints:  complaints,
		Routes:      routes,
		Performance: performance,
	}

	var svc *StatsService
	providers := map[domain.Role]StatsProvider{
		domain.RoleAdmin:      admin,
		domain.RoleSupervisor: admin,
		domain.RoleEmployee:   employee,
		domain.RoleCitizen:    citizen,
	}
	if cache != nil {
		svc = NewStatsService(providers, cache, 30*time.Second)
	} else {
		svc = NewStatsService(providers, nil, 30*time.Second)
	}
	return svc, complaints
}

func TestDashboardStatsDispatchesByRole(t *testing.T) {
	svc, _ := newStatsFixture(nil)

	adminStats, err := svc.DashboardStats(context.Background(), &domain.Employee{ID: 1, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := adminStats["totalEmployees"]; !ok {
		t.Fatalf("admin stats missing totalEmployees: %v", adminStats)
	}

	employeeStats, err := svc.DashboardStats(context.Background(), &domain.Employee{ID: 3, Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := employeeStats["attendance"]; !ok {
		t.Fatalf("employee stats missing attendance: %v", employeeStats)
	}

	citizenStats, err := svc.DashboardStats(context.Background(), &domain.Employee{ID: 5, Role: domain.RoleCitizen})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := citizenStats["myComplaints"]; !ok {
		t.Fatalf("citizen stats missing myComplaints: %v", citizenStats)
	}
}

func TestDashboardStatsUnknownRoleFallsBack(t *testing.T) {
	svc, _ := newStatsFixture(nil)

	stats, err := svc.DashboardStats(context.Background(), &domain.Employee{ID: 9, Role: "AUDITOR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := stats["myComplaints"]; !ok {
		t.Fatalf("expected citizen view for unknown role, got %v", stats)
	}
}

func TestDashboardStatsServedFromCache(t *testing.T) {
	cache := newMapStatsCache()
	svc, complaints := newStatsFixture(cache)

	user := &domain.Employee{ID: 5, Role: domain.RoleCitizen}

	first, err := svc.DashboardStats(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 1 {
		t.Fatalf("expected 1 cache put, got %d", cache.puts)
	}
	if first["myComplaints"] != 0 {
		t.Fatalf("myComplaints = %v, want 0", first["myComplaints"])
	}

	// Mutate the store; the cached snapshot must still be served.
	if _, err := complaints.Save(context.Background(), &domain.Complaint{
		CitizenID: 5,
		Title:     "Overflowing bin",
		Status:    domain.ComplaintPending,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.DashboardStats(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second["myComplaints"] != 0 {
		t.Fatalf("expected cached value 0, got %v", second["myComplaints"])
	}
	if cache.puts != 1 {
		t.Fatalf("expected no second cache put, got %d", cache.puts)
	}
}
