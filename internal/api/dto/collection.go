package dto

import "time"

type CollectionUpdateRequest struct {
	RouteID    int64   `json:"route_id"`
	WaypointID int64   `json:"waypoint_id"`
	Status     string  `json:"status"`
	PhotoURL   string  `json:"photo_url"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type CollectionRecordResponse struct {
	ID             int64     `json:"id"`
	RouteID        int64     `json:"route_id"`
	WaypointID     int64     `json:"waypoint_id"`
	EmployeeID     *int64    `json:"employee_id"`
	Status         string    `json:"status"`
	CollectedAt    time.Time `json:"collected_at"`
	CollectionDate *string   `json:"collection_date"`
	PhotoURL       string    `json:"photo_url,omitempty"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Remark         string    `json:"remark,omitempty"`
}

type ListCollectionRecordsResponse struct {
	Records []CollectionRecordResponse `json:"records"`
}
