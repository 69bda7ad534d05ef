package handlers

import (
	"log"
	"net/http"
	"strings"

	"waste-ops-service/internal/api/dto"
	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/services"
)

// ComplaintHandler exposes the citizen complaint workflow. Resolving an
// assigned complaint awards the resolution bonus here, keeping the
// scoring trigger at the API boundary.
type ComplaintHandler struct {
	Complaints   *services.ComplaintService
	Gamification *services.GamificationService
}

// Create files a new complaint for a citizen.
func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CreateComplaintRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CitizenID <= 0 {
		writeError(w, r, http.StatusBadRequest, "citizen_id must be a positive integer")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, r, http.StatusBadRequest, "title is required")
		return
	}

	complaint, err := h.Complaints.CreateComplaint(
		r.Context(),
		req.CitizenID,
		req.Title, req.Description, req.PhotoURL,
		req.Latitude, req.Longitude,
		req.Address,
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toComplaintResponse(complaint))
}

// ByCitizen lists one citizen's complaints.
func (h *ComplaintHandler) ByCitizen(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	citizenID, err := idParam(r, "citizen_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	complaints, svcErr := h.Complaints.GetCitizenComplaints(r.Context(), citizenID)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}

	writeJSON(w, r, http.StatusOK, toListComplaintsResponse(complaints))
}

// List returns complaints, optionally filtered by status.
func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw != "" {
		if _, ok := parseComplaintStatus(raw); !ok {
			writeError(w, r, http.StatusBadRequest, "status must be one of PENDING, IN_PROGRESS, RESOLVED, REJECTED")
			return
		}
	}

	complaints, err := h.Complaints.ListComplaintsByStatus(r.Context(), domain.ComplaintStatus(raw))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toListComplaintsResponse(complaints))
}

// UpdateStatus moves a complaint through its workflow. Resolving a
// complaint with an assigned employee awards that employee the
// resolution bonus; a scoring failure does not undo the resolution.
func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.UpdateComplaintStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ComplaintID <= 0 {
		writeError(w, r, http.StatusBadRequest, "complaint_id must be a positive integer")
		return
	}

	status, ok := parseComplaintStatus(req.Status)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "status must be one of PENDING, IN_PROGRESS, RESOLVED, REJECTED")
		return
	}

	complaint, err := h.Complaints.UpdateComplaintStatus(r.Context(), req.ComplaintID, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if complaint.Status == domain.ComplaintResolved && complaint.AssignedEmployeeID != nil {
		if _, err := h.Gamification.AwardPointsForComplaintResolution(r.Context(), *complaint.AssignedEmployeeID); err != nil {
			log.Printf("award complaint resolution failed: complaint=%d employee=%d err=%v",
				complaint.ID, *complaint.AssignedEmployeeID, err)
		}
	}

	writeJSON(w, r, http.StatusOK, toComplaintResponse(complaint))
}

// Assign attaches an employee to a complaint.
func (h *ComplaintHandler) Assign(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AssignComplaintRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ComplaintID <= 0 || req.EmployeeID <= 0 {
		writeError(w, r, http.StatusBadRequest, "complaint_id and employee_id must be positive integers")
		return
	}

	complaint, err := h.Complaints.AssignEmployee(r.Context(), req.ComplaintID, req.EmployeeID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toComplaintResponse(complaint))
}

func parseComplaintStatus(raw string) (domain.ComplaintStatus, bool) {
	switch domain.ComplaintStatus(raw) {
	case domain.ComplaintPending, domain.ComplaintInProgress,
		domain.ComplaintResolved, domain.ComplaintRejected:
		return domain.ComplaintStatus(raw), true
	}
	return "", false
}

func toComplaintResponse(c *domain.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:                 c.ID,
		CitizenID:          c.CitizenID,
		Title:              c.Title,
		Description:        c.Description,
		PhotoURL:           c.PhotoURL,
		Latitude:           c.Location.Lat,
		Longitude:          c.Location.Lng,
		Address:            c.Address,
		Status:             string(c.Status),
		Priority:           string(c.Priority),
		AssignedEmployeeID: c.AssignedEmployeeID,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func toListComplaintsResponse(complaints []*domain.Complaint) dto.ListComplaintsResponse {
	res := dto.ListComplaintsResponse{
		Complaints: make([]dto.ComplaintResponse, 0, len(complaints)),
	}
	for _, c := range complaints {
		res.Complaints = append(res.Complaints, toComplaintResponse(c))
	}
	return res
}
