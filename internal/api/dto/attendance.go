package dto

import "time"

type MarkAttendanceRequest struct {
	EmployeeID int64  `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Remarks    string `json:"remarks"`
}

type AttendanceResponse struct {
	ID           int64      `json:"id"`
	EmployeeID   int64      `json:"employee_id"`
	Date         string     `json:"date"`
	Status       string     `json:"status"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Remarks      string     `json:"remarks"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ListAttendanceResponse struct {
	Attendance []AttendanceResponse `json:"attendance"`
}

type TodayAttendanceResponse struct {
	Marked      bool       `json:"marked"`
	Status      string     `json:"status"`
	CheckInTime *time.Time `json:"check_in_time,omitempty"`
	Remarks     string     `json:"remarks,omitempty"`
}

type AttendanceStatsResponse struct {
	DaysPresent          int     `json:"daysPresent"`
	WorkingDays          int     `json:"workingDays"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

type SweepResponse struct {
	RosterSize   int `json:"roster_size"`
	MarkedAbsent int `json:"marked_absent"`
}
