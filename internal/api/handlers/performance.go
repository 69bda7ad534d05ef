package handlers

import (
	"net/http"

	"waste-ops-service/internal/api/dto"
	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
	"waste-ops-service/internal/services"
)

// PerformanceHandler exposes the scoring engine. Award endpoints are
// separate from the operations that trigger them so callers control
// when points land.
type PerformanceHandler struct {
	Gamification *services.GamificationService
	Records      ports.CollectionRecordRepository
}

// Get returns an employee's performance row, or 404 before the first
// scoring event.
func (h *PerformanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	employeeID, err := idParam(r, "employee_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	perf, svcErr := h.Gamification.GetPerformance(r.Context(), employeeID)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}
	if perf == nil {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, r, http.StatusOK, toPerformanceResponse(perf))
}

// AwardCollection awards points for one recorded collection.
func (h *PerformanceHandler) AwardCollection(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AwardCollectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EmployeeID <= 0 || req.RecordID <= 0 {
		writeError(w, r, http.StatusBadRequest, "employee_id and record_id must be positive integers")
		return
	}

	record, err := h.Records.FindByID(r.Context(), req.RecordID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if record == nil {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	perf, err := h.Gamification.AwardPointsForCollection(r.Context(), req.EmployeeID, record)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPerformanceResponse(perf))
}

// AwardRoute awards the route-completion bonus, doubled on a streak.
func (h *PerformanceHandler) AwardRoute(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AwardRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EmployeeID <= 0 || req.RouteID <= 0 {
		writeError(w, r, http.StatusBadRequest, "employee_id and route_id must be positive integers")
		return
	}

	perf, err := h.Gamification.AwardPointsForRouteCompletion(r.Context(), req.EmployeeID, req.RouteID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPerformanceResponse(perf))
}

// AwardComplaint awards the complaint-resolution bonus.
func (h *PerformanceHandler) AwardComplaint(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AwardComplaintRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.EmployeeID <= 0 {
		writeError(w, r, http.StatusBadRequest, "employee_id must be a positive integer")
		return
	}

	perf, err := h.Gamification.AwardPointsForComplaintResolution(r.Context(), req.EmployeeID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toPerformanceResponse(perf))
}

func toPerformanceResponse(perf *domain.EmployeePerformance) dto.PerformanceResponse {
	return dto.PerformanceResponse{
		EmployeeID:         perf.EmployeeID,
		TotalPoints:        perf.TotalPoints,
		MonthlyPoints:      perf.MonthlyPoints,
		StreakDays:         perf.StreakDays,
		RoutesCompleted:    perf.RoutesCompleted,
		ComplaintsResolved: perf.ComplaintsResolved,
		CurrentBadge:       perf.CurrentBadge,
		PerformanceLevel:   string(perf.PerformanceLevel),
		LastUpdated:        perf.LastUpdated,
	}
}
