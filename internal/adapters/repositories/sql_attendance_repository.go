package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"waste-ops-service/internal/domain"
)

// Postgres-backed implementation of the AttendanceRepository port. The
// UNIQUE (employee_id, date) constraint backs the one-row-per-day
// invariant; inserts upsert on conflict so concurrent first marks for
// the same day collapse into one row.
type SQLAttendanceRepository struct{ DB *sql.DB }

func NewSQLAttendanceRepository(db *sql.DB) *SQLAttendanceRepository {
	return &SQLAttendanceRepository{DB: db}
}

const attendanceColumns = `id, employee_id, date, status, check_in_time, check_out_time, remarks, created_at, updated_at`

func (s *SQLAttendanceRepository) FindByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*domain.Attendance, error) {
	if s.DB == nil {
		return nil, errors.New("attendance repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT `+attendanceColumns+`
	FROM attendance
	WHERE employee_id = $1 AND date = $2;
	`, employeeID, date)

	att, err := scanAttendance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find attendance: employee=%d: %w", employeeID, err)
	}
	return att, nil
}

func (s *SQLAttendanceRepository) Save(ctx context.Context, att *domain.Attendance) (*domain.Attendance, error) {
	if s.DB == nil {
		return nil, errors.New("attendance repository: DB is nil")
	}

	if att.ID == 0 {
		err := s.DB.QueryRowContext(ctx, `
		INSERT INTO attendance (employee_id, date, status, check_in_time, check_out_time, remarks, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET status = EXCLUDED.status,
			remarks = EXCLUDED.remarks,
			check_in_time = COALESCE(attendance.check_in_time, EXCLUDED.check_in_time),
			updated_at = EXCLUDED.updated_at
		RETURNING id;
		`, att.EmployeeID, att.Date, string(att.Status), att.CheckInTime, att.CheckOutTime, att.Remarks, att.CreatedAt, att.UpdatedAt).Scan(&att.ID)
		if err != nil {
			return nil, fmt.Errorf("insert attendance: employee=%d: %w", att.EmployeeID, err)
		}
		return att, nil
	}

	_, err := s.DB.ExecContext(ctx, `
	UPDATE attendance
	SET status = $2, check_in_time = $3, check_out_time = $4, remarks = $5, updated_at = $6
	WHERE id = $1;
	`, att.ID, string(att.Status), att.CheckInTime, att.CheckOutTime, att.Remarks, att.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update attendance: id=%d: %w", att.ID, err)
	}
	return att, nil
}

func (s *SQLAttendanceRepository) CountPresent(ctx context.Context, employeeID int64, start, end time.Time) (int, error) {
	if s.DB == nil {
		return 0, errors.New("attendance repository: DB is nil")
	}

	var n int
	err := s.DB.QueryRowContext(ctx, `
	SELECT COUNT(*)
	FROM attendance
	WHERE employee_id = $1
		AND status = $2
		AND date BETWEEN $3 AND $4;
	`, employeeID, string(domain.AttendancePresent), start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count present: employee=%d: %w", employeeID, err)
	}
	return n, nil
}

func (s *SQLAttendanceRepository) ListForDate(ctx context.Context, date time.Time) ([]*domain.Attendance, error) {
	return s.queryAttendance(ctx, `
	SELECT `+attendanceColumns+`
	FROM attendance
	WHERE date = $1
	ORDER BY employee_id;
	`, date)
}

func (s *SQLAttendanceRepository) ListForEmployee(ctx context.Context, employeeID int64) ([]*domain.Attendance, error) {
	return s.queryAttendance(ctx, `
	SELECT `+attendanceColumns+`
	FROM attendance
	WHERE employee_id = $1
	ORDER BY date;
	`, employeeID)
}

func (s *SQLAttendanceRepository) queryAttendance(ctx context.Context, query string, args ...any) ([]*domain.Attendance, error) {
	if s.DB == nil {
		return nil, errors.New("attendance repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: query attendance table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Attendance, 0, 32)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("list attendance: scan row: %w", err)
		}
		out = append(out, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendance: row iteration: %w", err)
	}
	return out, nil
}

func scanAttendance(row rowScanner) (*domain.Attendance, error) {
	var (
		att      domain.Attendance
		status   string
		checkIn  sql.NullTime
		checkOut sql.NullTime
	)
	err := row.Scan(&att.ID, &att.EmployeeID, &att.Date, &status, &checkIn, &checkOut, &att.Remarks, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return nil, err
	}

	att.Status = domain.AttendanceStatus(status)
	if checkIn.Valid {
		att.CheckInTime = &checkIn.Time
	}
	if checkOut.Valid {
		att.CheckOutTime = &checkOut.Time
	}
	return &att, nil
}
