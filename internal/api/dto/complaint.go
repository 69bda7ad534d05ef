package dto

import "time"

type CreateComplaintRequest struct {
	CitizenID   int64   `json:"citizen_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PhotoURL    string  `json:"photo_url"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Address     string  `json:"address"`
}

type UpdateComplaintStatusRequest struct {
	ComplaintID int64  `json:"complaint_id"`
	Status      string `json:"status"`
}

type AssignComplaintRequest struct {
	ComplaintID int64 `json:"complaint_id"`
	EmployeeID  int64 `json:"employee_id"`
}

type ComplaintResponse struct {
	ID                 int64     `json:"id"`
	CitizenID          int64     `json:"citizen_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	PhotoURL           string    `json:"photo_url,omitempty"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	Address            string    `json:"address,omitempty"`
	Status             string    `json:"status"`
	Priority           string    `json:"priority"`
	AssignedEmployeeID *int64    `json:"assigned_employee_id"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ListComplaintsResponse struct {
	Complaints []ComplaintResponse `json:"complaints"`
}
