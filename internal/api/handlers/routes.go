package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"waste-ops-service/internal/api/dto"
	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/services"
)

// RouteHandler exposes route lifecycle and collection tracking
// endpoints for both field employees and dispatchers.
type RouteHandler struct {
	Service *services.RouteService
}

// ForDay lists routes scheduled on a calendar day. With employee_id the
// view is scoped to that employee; without it every route for the day
// is returned.
func (h *RouteHandler) ForDay(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	date, err := dateParam(r, "date")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var employeeID *int64
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, r, http.StatusBadRequest, "employee_id must be a positive integer")
			return
		}
		employeeID = &id
	}

	routes, svcErr := h.Service.GetEmployeeRoutesForDay(r.Context(), employeeID, date)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}

	writeJSON(w, r, http.StatusOK, toListRoutesResponse(routes))
}

// Waypoints lists a route's stops in sequence order.
func (h *RouteHandler) Waypoints(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	routeID, err := idParam(r, "route_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	wps, svcErr := h.Service.GetRouteWaypoints(r.Context(), routeID)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}

	res := dto.ListWaypointsResponse{
		Waypoints: make([]dto.WaypointResponse, 0, len(wps)),
	}
	for _, wp := range wps {
		res.Waypoints = append(res.Waypoints, dto.WaypointResponse{
			ID:        wp.ID,
			RouteID:   wp.RouteID,
			Sequence:  wp.Sequence,
			Latitude:  wp.Location.Lat,
			Longitude: wp.Location.Lng,
			BinID:     wp.BinID,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

// UpdateCollection records the outcome of a single stop.
func (h *RouteHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CollectionUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RouteID <= 0 || req.WaypointID <= 0 {
		writeError(w, r, http.StatusBadRequest, "route_id and waypoint_id must be positive integers")
		return
	}

	status, ok := parseCollectionStatus(req.Status)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "status must be one of COLLECTED, SKIPPED, PARTIAL")
		return
	}

	record, err := h.Service.UpdateCollectionStatus(
		r.Context(),
		req.RouteID, req.WaypointID,
		status,
		req.PhotoURL,
		req.Latitude, req.Longitude,
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toCollectionRecordResponse(record))
}

// Complete transitions a route to COMPLETED and writes one collection
// record per waypoint.
func (h *RouteHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CompleteRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RouteID <= 0 {
		writeError(w, r, http.StatusBadRequest, "route_id must be a positive integer")
		return
	}

	if err := h.Service.CompleteRoute(r.Context(), req.RouteID, req.Remark, req.PhotoURL); err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "completed"})
}

// CollectionsForDay lists an employee's collection records for one
// calendar day.
func (h *RouteHandler) CollectionsForDay(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	employeeID, err := idParam(r, "employee_id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	date, err := dateParam(r, "date")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records, svcErr := h.Service.GetEmployeeCollectionsForDay(r.Context(), employeeID, date)
	if svcErr != nil {
		writeServiceError(w, r, svcErr)
		return
	}

	res := dto.ListCollectionRecordsResponse{
		Records: make([]dto.CollectionRecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		res.Records = append(res.Records, toCollectionRecordResponse(rec))
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Manage handles the dispatcher route collection: GET lists routes
// (optionally filtered by status), POST creates a route with its
// waypoints.
func (h *RouteHandler) Manage(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *RouteHandler) list(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("status"))

	var (
		routes []*domain.Route
		err    error
	)
	if raw == "" {
		routes, err = h.Service.ListRoutes(r.Context())
	} else {
		status, ok := parseRouteStatus(raw)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "status must be one of SCHEDULED, ACTIVE, IN_PROGRESS, COMPLETED")
			return
		}
		routes, err = h.Service.ListRoutesByStatus(r.Context(), status)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toListRoutesResponse(routes))
}

func (h *RouteHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}
	if req.ScheduleDate.IsZero() {
		writeError(w, r, http.StatusBadRequest, "schedule_date is required")
		return
	}

	route := &domain.Route{
		Name:         req.Name,
		Description:  req.Description,
		VehicleID:    req.VehicleID,
		EmployeeID:   req.EmployeeID,
		ScheduleDate: req.ScheduleDate,
	}

	waypoints := make([]*domain.Waypoint, 0, len(req.Waypoints))
	for _, wp := range req.Waypoints {
		waypoints = append(waypoints, &domain.Waypoint{
			Sequence: wp.Sequence,
			Location: domain.Coordinates{Lat: wp.Latitude, Lng: wp.Longitude},
			BinID:    wp.BinID,
		})
	}

	created, err := h.Service.CreateRoute(r.Context(), route, waypoints)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toRouteResponse(created))
}

func parseCollectionStatus(raw string) (domain.CollectionStatus, bool) {
	switch domain.CollectionStatus(raw) {
	case domain.CollectionCollected, domain.CollectionSkipped, domain.CollectionPartial:
		return domain.CollectionStatus(raw), true
	}
	return "", false
}

func parseRouteStatus(raw string) (domain.RouteStatus, bool) {
	switch domain.RouteStatus(raw) {
	case domain.RouteScheduled, domain.RouteActive, domain.RouteInProgress, domain.RouteCompleted:
		return domain.RouteStatus(raw), true
	}
	return "", false
}

func toRouteResponse(route *domain.Route) dto.RouteResponse {
	return dto.RouteResponse{
		ID:           route.ID,
		Name:         route.Name,
		Description:  route.Description,
		VehicleID:    route.VehicleID,
		EmployeeID:   route.EmployeeID,
		ScheduleDate: route.ScheduleDate,
		Status:       string(route.Status),
	}
}

func toListRoutesResponse(routes []*domain.Route) dto.ListRoutesResponse {
	res := dto.ListRoutesResponse{
		Routes: make([]dto.RouteResponse, 0, len(routes)),
	}
	for _, route := range routes {
		res.Routes = append(res.Routes, toRouteResponse(route))
	}
	return res
}

func toCollectionRecordResponse(rec *domain.CollectionRecord) dto.CollectionRecordResponse {
	res := dto.CollectionRecordResponse{
		ID:          rec.ID,
		RouteID:     rec.RouteID,
		WaypointID:  rec.WaypointID,
		EmployeeID:  rec.EmployeeID,
		Status:      string(rec.Status),
		CollectedAt: rec.CollectedAt,
		PhotoURL:    rec.PhotoURL,
		Latitude:    rec.Location.Lat,
		Longitude:   rec.Location.Lng,
		Remark:      rec.Remark,
	}
	if rec.CollectionDate != nil {
		day := rec.CollectionDate.Format("2006-01-02")
		res.CollectionDate = &day
	}
	return res
}
