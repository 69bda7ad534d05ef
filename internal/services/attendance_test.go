package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"waste-ops-service/internal/adapters/repositories/memory"
	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestMarkAttendanceUpsertsSingleRow(t *testing.T) {
	repo := memory.NewAttendanceRepository()
	directory := memory.NewEmployeeDirectory()
	svc := NewAttendanceService(repo, directory)

	morning := time.Date(2026, 3, 9, 8, 30, 0, 0, time.UTC)
	svc.now = fixedClock(morning)

	first, err := svc.MarkAttendance(context.Background(), 7, morning, domain.AttendancePresent, "on time")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.CheckInTime == nil || !first.CheckInTime.Equal(morning) {
		t.Fatalf("check-in = %v, want %v", first.CheckInTime, morning)
	}

	evening := time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC)
	svc.now = fixedClock(evening)

	second, err := svc.MarkAttendance(context.Background(), 7, evening, domain.AttendanceHalfDay, "left early")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected same row, got ids %d and %d", first.ID, second.ID)
	}
	if second.Status != domain.AttendanceHalfDay {
		t.Fatalf("status = %s, want HALF_DAY", second.Status)
	}
	if len(repo.All()) != 1 {
		t.Fatalf("expected 1 row, got %d", len(repo.All()))
	}
}

func TestMarkAttendanceCheckInStampedOnce(t *testing.T) {
	repo := memory.NewAttendanceRepository()
	svc := NewAttendanceService(repo, memory.NewEmployeeDirectory())

	morning := time.Date(2026, 3, 9, 8, 30, 0, 0, time.UTC)
	svc.now = fixedClock(morning)
	if _, err := svc.MarkAttendance(context.Background(), 7, morning, domain.AttendancePresent, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	later := morning.Add(6 * time.Hour)
	svc.now = fixedClock(later)
	att, err := svc.MarkAttendance(context.Background(), 7, later, domain.AttendancePresent, "re-marked")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if att.CheckInTime == nil || !att.CheckInTime.Equal(morning) {
		t.Fatalf("check-in = %v, want original %v", att.CheckInTime, morning)
	}
}

func TestAttendanceStatsPercentage(t *testing.T) {
	repo := memory.NewAttendanceRepository()
	svc := NewAttendanceService(repo, memory.NewEmployeeDirectory())

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		svc.now = fixedClock(day.Add(9 * time.Hour))
		if _, err := svc.MarkAttendance(context.Background(), 4, day, domain.AttendancePresent, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	end := start.AddDate(0, 0, 9)
	stats, err := svc.GetEmployeeAttendanceStats(context.Background(), 4, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.DaysPresent != 7 {
		t.Fatalf("days present = %d, want 7", stats.DaysPresent)
	}
	if stats.WorkingDays != 10 {
		t.Fatalf("working days = %d, want 10", stats.WorkingDays)
	}
	if stats.AttendancePercentage != 70.0 {
		t.Fatalf("percentage = %v, want 70", stats.AttendancePercentage)
	}
}

func TestAttendanceStatsEmptyWindow(t *testing.T) {
	svc := NewAttendanceService(memory.NewAttendanceRepository(), memory.NewEmployeeDirectory())

	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, 5)

	stats, err := svc.GetEmployeeAttendanceStats(context.Background(), 4, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.WorkingDays != 0 || stats.AttendancePercentage != 0 {
		t.Fatalf("expected zero stats for reversed window, got %+v", stats)
	}
}

func TestDailyAttendanceSweep(t *testing.T) {
	repo := memory.NewAttendanceRepository()
	directory := memory.NewEmployeeDirectory(
		&domain.Employee{ID: 1, Name: "A", Role: domain.RoleEmployee},
		&domain.Employee{ID: 2, Name: "B", Role: domain.RoleEmployee},
		&domain.Employee{ID: 3, Name: "C", Role: domain.RoleCitizen},
	)
	svc := NewAttendanceService(repo, directory)

	today := time.Date(2026, 3, 9, 23, 50, 0, 0, time.UTC)
	svc.now = fixedClock(today)

	if _, err := svc.MarkAttendance(context.Background(), 1, today, domain.AttendancePresent, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.ProcessDailyAttendance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RosterSize != 2 {
		t.Fatalf("roster = %d, want 2", result.RosterSize)
	}
	if result.MarkedAbsent != 1 {
		t.Fatalf("marked absent = %d, want 1", result.MarkedAbsent)
	}

	att, err := svc.GetAttendance(context.Background(), 2, today)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if att == nil || att.Status != domain.AttendanceAbsent {
		t.Fatalf("expected employee 2 marked absent, got %+v", att)
	}
	if att.Remarks != "Auto-marked as absent" {
		t.Fatalf("remarks = %q", att.Remarks)
	}

	// Second run must not touch anything.
	again, err := svc.ProcessDailyAttendance(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.MarkedAbsent != 0 {
		t.Fatalf("second sweep marked %d, want 0", again.MarkedAbsent)
	}
}

// failingAttendanceRepo fails lookups for one employee to exercise
// sweep error isolation.
type failingAttendanceRepo struct {
	ports.AttendanceRepository
	failFor int64
}

func (r *failingAttendanceRepo) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Attendance, error) {
	if employeeID == r.failFor {
		return nil, errors.New("storage offline")
	}
	return r.AttendanceRepository.FindByEmployeeAndDate(ctx, employeeID, date)
}

func TestDailyAttendanceSweepIsolatesFailures(t *testing.T) {
	repo := &failingAttendanceRepo{
		AttendanceRepository: memory.NewAttendanceRepository(),
		failFor:              2,
	}
	directory := memory.NewEmployeeDirectory(
		&domain.Employee{ID: 1, Name: "A", Role: domain.RoleEmployee},
		&domain.Employee{ID: 2, Name: "B", Role: domain.RoleEmployee},
		&domain.Employee{ID: 3, Name: "C", Role: domain.RoleEmployee},
	)
	svc := NewAttendanceService(repo, directory)
	svc.now = fixedClock(time.Date(2026, 3, 9, 23, 50, 0, 0, time.UTC))

	result, err := svc.ProcessDailyAttendance(context.Background())
	if err == nil {
		t.Fatal("expected joined error for failing employee")
	}

	if result.MarkedAbsent != 2 {
		t.Fatalf("marked absent = %d, want 2", result.MarkedAbsent)
	}
}
