package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

// AttendanceService owns the per-employee, per-day attendance ledger:
// manual marking, windowed stats, and the daily absence sweep.
type AttendanceService struct {
	attendance ports.AttendanceRepository
	directory  ports.EmployeeDirectory
	now        func() time.Time
}

func NewAttendanceService(attendance ports.AttendanceRepository, directory ports.EmployeeDirectory) *AttendanceService {
	return &AttendanceService{
		attendance: attendance,
		directory:  directory,
		now:        time.Now,
	}
}

// MarkAttendance upserts the (employee, date) row. Repeated calls for
// the same day update the same row; the check-in time is stamped at
// most once, the first time the status becomes PRESENT.
func (s *AttendanceService) MarkAttendance(
	ctx context.Context,
	employeeID int64,
	date time.Time,
	status domain.AttendanceStatus,
	remarks string,
) (*domain.Attendance, error) {
	day := domain.DateOf(date)
	now := s.now()

	att, err := s.attendance.FindByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("mark attendance: find employee=%d date=%s: %w", employeeID, day.Format("2006-01-02"), err)
	}

	if att != nil {
		att.Status = status
		att.Remarks = remarks
		att.UpdatedAt = now
		if status == domain.AttendancePresent && att.CheckInTime == nil {
			att.CheckInTime = &now
		}
	} else {
		att = &domain.Attendance{
			EmployeeID: employeeID,
			Date:       day,
			Status:     status,
			Remarks:    remarks,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if status == domain.AttendancePresent {
			att.CheckInTime = &now
		}
	}

	saved, err := s.attendance.Save(ctx, att)
	if err != nil {
		return nil, fmt.Errorf("mark attendance: save employee=%d: %w", employeeID, err)
	}
	return saved, nil
}

// GetAttendance returns the row for (employee, date), or nil when the
// day is unmarked.
func (s *AttendanceService) GetAttendance(ctx context.Context, employeeID int64, date time.Time) (*domain.Attendance, error) {
	att, err := s.attendance.FindByEmployeeAndDate(ctx, employeeID, domain.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return att, nil
}

// GetEmployeeAttendanceStats summarizes presence over the inclusive
// [start, end] window. A zero-day window yields a zero percentage
// rather than an error.
func (s *AttendanceService) GetEmployeeAttendanceStats(
	ctx context.Context,
	employeeID int64,
	start, end time.Time,
) (domain.AttendanceStats, error) {
	present, err := s.attendance.CountPresent(ctx, employeeID, domain.DateOf(start), domain.DateOf(end))
	if err != nil {
		return domain.AttendanceStats{}, fmt.Errorf("attendance stats: count present: %w", err)
	}

	workingDays := domain.DaysBetween(start, end)

	stats := domain.AttendanceStats{
		DaysPresent: present,
		WorkingDays: workingDays,
	}
	if workingDays > 0 {
		stats.AttendancePercentage = float64(present) * 100.0 / float64(workingDays)
	}
	return stats, nil
}

// SweepResult reports one run of the daily absence sweep.
type SweepResult struct {
	RosterSize   int
	MarkedAbsent int
}

// ProcessDailyAttendance marks every active employee without a row for
// today as absent. Employees already marked are left untouched, so the
// sweep is idempotent. A failure for one employee does not abort the
// sweep for the rest; failures are joined into the returned error.
func (s *AttendanceService) ProcessDailyAttendance(ctx context.Context) (SweepResult, error) {
	today := domain.DateOf(s.now())

	employees, err := s.directory.ListActiveEmployees(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("daily attendance sweep: list employees: %w", err)
	}

	result := SweepResult{RosterSize: len(employees)}
	var failures []error

	for _, emp := range employees {
		att, err := s.attendance.FindByEmployeeAndDate(ctx, emp.ID, today)
		if err != nil {
			failures = append(failures, fmt.Errorf("daily attendance sweep: employee=%d: %w", emp.ID, err))
			continue
		}
		if att != nil {
			continue
		}

		if _, err := s.MarkAttendance(ctx, emp.ID, today, domain.AttendanceAbsent, "Auto-marked as absent"); err != nil {
			failures = append(failures, fmt.Errorf("daily attendance sweep: employee=%d: %w", emp.ID, err))
			continue
		}
		result.MarkedAbsent++
	}

	return result, errors.Join(failures...)
}

// ListAttendanceForDate returns every attendance row for one calendar day.
func (s *AttendanceService) ListAttendanceForDate(ctx context.Context, date time.Time) ([]*domain.Attendance, error) {
	rows, err := s.attendance.ListForDate(ctx, domain.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("list attendance for date: %w", err)
	}
	return rows, nil
}

// ListEmployeeAttendance returns an employee's full attendance history.
func (s *AttendanceService) ListEmployeeAttendance(ctx context.Context, employeeID int64) ([]*domain.Attendance, error) {
	rows, err := s.attendance.ListForEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list employee attendance: %w", err)
	}
	return rows, nil
}
