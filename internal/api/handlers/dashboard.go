package handlers

import (
	"net/http"

	"waste-ops-service/internal/ports"
	"waste-ops-service/internal/services"
)

// DashboardHandler serves role-specific dashboard stats. The response
// shape varies with the caller's role, so it is returned as-is.
type DashboardHandler struct {
	Stats     *services.StatsService
	Directory ports.EmployeeDirectory
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	userID, err := idParam(r, "user_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, svcErr := h.Directory.FindEmployee(r.Context(), userID)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}
	if user == nil {
		writeError(w, r, http.StatusNotFound, "not found")
		return
	}

	stats, svcErr := h.Stats.DashboardStats(r.Context(), user)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}

	writeJSON(w, r, http.StatusOK, stats)
}
