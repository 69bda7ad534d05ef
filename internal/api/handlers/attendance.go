package handlers

import (
	"log"
	"net/http"
	"time"

	"waste-ops-service/internal/api/dto"
	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/services"
)

// AttendanceHandler exposes the attendance ledger: marking, today's
// state, windowed stats, and the admin absence sweep.
type AttendanceHandler struct {
	Service *services.AttendanceService
}

// Mark upserts the caller's attendance row for a day. Omitting the date
// marks today.
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.MarkAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EmployeeID <= 0 {
		writeError(w, r, http.StatusBadRequest, "employee_id must be a positive integer")
		return
	}

	status, ok := parseAttendanceStatus(req.Status)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "status must be one of PRESENT, ABSENT, PENDING, HALF_DAY, ON_LEAVE")
		return
	}

	date := domain.DateOf(time.Now())
	if req.Date != "" {
		parsed, err := domain.ParseDate(req.Date)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		date = parsed
	}

	att, err := h.Service.MarkAttendance(r.Context(), req.EmployeeID, date, status, req.Remarks)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toAttendanceResponse(att))
}

// Today reports whether the employee has marked attendance yet.
func (h *AttendanceHandler) Today(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	employeeID, err := idParam(r, "employee_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	att, svcErr := h.Service.GetAttendance(r.Context(), employeeID, time.Now())
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}

	res := dto.TodayAttendanceResponse{Marked: att != nil}
	if att != nil {
		res.Status = string(att.Status)
		res.CheckInTime = att.CheckInTime
		res.Remarks = att.Remarks
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Stats summarizes presence over an inclusive date window. The window
// defaults to the current month when start/end are omitted.
func (h *AttendanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	employeeID, err := idParam(r, "employee_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := domain.DateOf(now)

	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err = domain.ParseDate(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "start must be formatted as YYYY-MM-DD")
			return
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err = domain.ParseDate(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "end must be formatted as YYYY-MM-DD")
			return
		}
	}

	stats, err := h.Service.GetEmployeeAttendanceStats(r.Context(), employeeID, start, end)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AttendanceStatsResponse{
		DaysPresent:          stats.DaysPresent,
		WorkingDays:          stats.WorkingDays,
		AttendancePercentage: stats.AttendancePercentage,
	})
}

// History returns the employee's full attendance history.
func (h *AttendanceHandler) History(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	employeeID, err := idParam(r, "employee_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rows, svcErr := h.Service.ListEmployeeAttendance(r.Context(), employeeID)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}

	writeJSON(w, r, http.StatusOK, toListAttendanceResponse(rows))
}

// ForDate returns every attendance row for one calendar day.
func (h *AttendanceHandler) ForDate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	date, err := dateParam(r, "date")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rows, svcErr := h.Service.ListAttendanceForDate(r.Context(), date)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}

	writeJSON(w, r, http.StatusOK, toListAttendanceResponse(rows))
}

// Sweep runs the daily absence sweep. Per-employee failures do not
// abort the sweep, so a partial result is still reported.
func (h *AttendanceHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	result, err := h.Service.ProcessDailyAttendance(r.Context())
	if err != nil {
		log.Printf("attendance sweep completed with failures: %v", err)
	}

	writeJSON(w, r, http.StatusOK, dto.SweepResponse{
		RosterSize:   result.RosterSize,
		MarkedAbsent: result.MarkedAbsent,
	})
}

func parseAttendanceStatus(raw string) (domain.AttendanceStatus, bool) {
	switch domain.AttendanceStatus(raw) {
	case domain.AttendancePresent, domain.AttendanceAbsent, domain.AttendancePending,
		domain.AttendanceHalfDay, domain.AttendanceOnLeave:
		return domain.AttendanceStatus(raw), true
	}
	return "", false
}

func toAttendanceResponse(att *domain.Attendance) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		Date:         att.Date.Format("2006-01-02"),
		Status:       string(att.Status),
		CheckInTime:  att.CheckInTime,
		CheckOutTime: att.CheckOutTime,
		Remarks:      att.Remarks,
		CreatedAt:    att.CreatedAt,
		UpdatedAt:    att.UpdatedAt,
	}
}

func toListAttendanceResponse(rows []*domain.Attendance) dto.ListAttendanceResponse {
	res := dto.ListAttendanceResponse{
		Attendance: make([]dto.AttendanceResponse, 0, len(rows)),
	}
	for _, att := range rows {
		res.Attendance = append(res.Attendance, toAttendanceResponse(att))
	}
	return res
}
