package dto

import "time"

type AwardCollectionRequest struct {
	EmployeeID int64 `json:"employee_id"`
	RecordID   int64 `json:"record_id"`
}

type AwardRouteRequest struct {
	EmployeeID int64 `json:"employee_id"`
	RouteID    int64 `json:"route_id"`
}

type AwardComplaintRequest struct {
	EmployeeID int64 `json:"employee_id"`
}

type PerformanceResponse struct {
	EmployeeID         int64     `json:"employee_id"`
	TotalPoints        int       `json:"total_points"`
	MonthlyPoints      int       `json:"monthly_points"`
	StreakDays         int       `json:"streak_days"`
	RoutesCompleted    int       `json:"routes_completed"`
	ComplaintsResolved int       `json:"complaints_resolved"`
	CurrentBadge       string    `json:"current_badge"`
	PerformanceLevel   string    `json:"performance_level"`
	LastUpdated        time.Time `json:"last_updated"`
}
