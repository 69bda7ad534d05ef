package domain

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendancePending AttendanceStatus = "PENDING"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
	AttendanceOnLeave AttendanceStatus = "ON_LEAVE"
)

// Attendance is one employee's daily work-presence record. At most one
// row exists per (employee, date); marking twice updates the same row.
type Attendance struct {
	ID           int64
	EmployeeID   int64
	Date         time.Time
	Status       AttendanceStatus
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Remarks      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AttendanceStats summarizes presence over an inclusive date window.
type AttendanceStats struct {
	DaysPresent          int
	WorkingDays          int
	AttendancePercentage float64
}
