package domain

import "time"

type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "PENDING"
	ComplaintInProgress ComplaintStatus = "IN_PROGRESS"
	ComplaintResolved   ComplaintStatus = "RESOLVED"
	ComplaintRejected   ComplaintStatus = "REJECTED"
)

type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "LOW"
	PriorityMedium ComplaintPriority = "MEDIUM"
	PriorityHigh   ComplaintPriority = "HIGH"
)

// Complaint is a citizen-reported issue. Resolution feeds the scoring
// engine when an employee is assigned.
type Complaint struct {
	ID                 int64
	CitizenID          int64
	Title              string
	Description        string
	PhotoURL           string
	Location           Coordinates
	Address            string
	Status             ComplaintStatus
	Priority           ComplaintPriority
	AssignedEmployeeID *int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
