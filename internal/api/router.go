package api

import (
	"net/http"

	"waste-ops-service/internal/api/handlers"
	"waste-ops-service/internal/ports"
	"waste-ops-service/internal/services"
)

// Deps carries everything the HTTP layer needs. Handlers depend on
// services and ports only, never on concrete adapters.
type Deps struct {
	Attendance   *services.AttendanceService
	Routes       *services.RouteService
	Gamification *services.GamificationService
	Complaints   *services.ComplaintService
	Bins         *services.BinService
	Stats        *services.StatsService
	Collections  ports.CollectionRecordRepository
	Directory    ports.EmployeeDirectory
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	attendance := &handlers.AttendanceHandler{Service: deps.Attendance}
	routes := &handlers.RouteHandler{Service: deps.Routes}
	performance := &handlers.PerformanceHandler{
		Gamification: deps.Gamification,
		Records:      deps.Collections,
	}
	complaints := &handlers.ComplaintHandler{
		Complaints:   deps.Complaints,
		Gamification: deps.Gamification,
	}
	bins := &handlers.BinHandler{Service: deps.Bins}
	dashboard := &handlers.DashboardHandler{
		Stats:     deps.Stats,
		Directory: deps.Directory,
	}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("/attendance/mark", attendance.Mark)
	mux.HandleFunc("/attendance/today", attendance.Today)
	mux.HandleFunc("/attendance/stats", attendance.Stats)
	mux.HandleFunc("/attendance/history", attendance.History)
	mux.HandleFunc("/attendance/by-date", attendance.ForDate)
	mux.HandleFunc("/attendance/process-daily", attendance.Sweep)

	mux.HandleFunc("/routes", routes.Manage)
	mux.HandleFunc("/routes/for-day", routes.ForDay)
	mux.HandleFunc("/routes/waypoints", routes.Waypoints)
	mux.HandleFunc("/routes/complete", routes.Complete)
	mux.HandleFunc("/collections/update", routes.UpdateCollection)
	mux.HandleFunc("/collections/for-day", routes.CollectionsForDay)

	mux.HandleFunc("/performance", performance.Get)
	mux.HandleFunc("/performance/award/collection", performance.AwardCollection)
	mux.HandleFunc("/performance/award/route", performance.AwardRoute)
	mux.HandleFunc("/performance/award/complaint", performance.AwardComplaint)

	mux.HandleFunc("/complaints", complaints.Create)
	mux.HandleFunc("/complaints/by-citizen", complaints.ByCitizen)
	mux.HandleFunc("/complaints/list", complaints.List)
	mux.HandleFunc("/complaints/status", complaints.UpdateStatus)
	mux.HandleFunc("/complaints/assign", complaints.Assign)

	mux.HandleFunc("/bins", bins.List)
	mux.HandleFunc("/bins/fill-level", bins.ReportFill)

	mux.HandleFunc("/dashboard/stats", dashboard.Get)

	return requestIDMiddleware(loggingMiddleware(mux))
}
