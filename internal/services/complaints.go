package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

// ComplaintService owns citizen complaints. Resolving an assigned
// complaint is the trigger for complaint-resolution scoring, invoked by
// the caller just like route-completion scoring.
type ComplaintService struct {
	complaints ports.ComplaintRepository
	directory  ports.EmployeeDirectory
	notifier   ports.Notifier
	now        func() time.Time
}

func NewComplaintService(complaints ports.ComplaintRepository, directory ports.EmployeeDirectory, notifier ports.Notifier) *ComplaintService {
	return &ComplaintService{
		complaints: complaints,
		directory:  directory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// CreateComplaint files a new complaint as PENDING with default
// priority.
func (s *ComplaintService) CreateComplaint(
	ctx context.Context,
	citizenID int64,
	title, description, photoURL string,
	lat, lng float64,
	address string,
) (*domain.Complaint, error) {
	citizen, err := s.directory.FindEmployee(ctx, citizenID)
	if err != nil {
		return nil, fmt.Errorf("create complaint: find citizen=%d: %w", citizenID, err)
	}
	if citizen == nil {
		return nil, fmt.Errorf("create complaint: citizen=%d: %w", citizenID, domain.ErrNotFound)
	}

	now := s.now()
	complaint := &domain.Complaint{
		CitizenID:   citizenID,
		Title:       title,
		Description: description,
		PhotoURL:    photoURL,
		Location:    domain.Coordinates{Lat: lat, Lng: lng},
		Address:     address,
		Status:      domain.ComplaintPending,
		Priority:    domain.PriorityMedium,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := s.complaints.Save(ctx, complaint)
	if err != nil {
		return nil, fmt.Errorf("create complaint: save: %w", err)
	}
	return saved, nil
}

// GetCitizenComplaints lists one citizen's complaints.
func (s *ComplaintService) GetCitizenComplaints(ctx context.Context, citizenID int64) ([]*domain.Complaint, error) {
	complaints, err := s.complaints.ListByCitizen(ctx, citizenID)
	if err != nil {
		return nil, fmt.Errorf("citizen complaints: %w", err)
	}
	return complaints, nil
}

// UpdateComplaintStatus moves a complaint to the given status and
// notifies the filing citizen.
func (s *ComplaintService) UpdateComplaintStatus(ctx context.Context, complaintID int64, status domain.ComplaintStatus) (*domain.Complaint, error) {
	complaint, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("update complaint status: find complaint=%d: %w", complaintID, err)
	}
	if complaint == nil {
		return nil, fmt.Errorf("update complaint status: complaint=%d: %w", complaintID, domain.ErrNotFound)
	}

	complaint.Status = status
	complaint.UpdatedAt = s.now()

	saved, err := s.complaints.Save(ctx, complaint)
	if err != nil {
		return nil, fmt.Errorf("update complaint status: save complaint=%d: %w", complaintID, err)
	}

	s.publishComplaintUpdate(ctx, saved)
	return saved, nil
}

// AssignEmployee attaches an employee to a complaint.
func (s *ComplaintService) AssignEmployee(ctx context.Context, complaintID, employeeID int64) (*domain.Complaint, error) {
	complaint, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("assign complaint: find complaint=%d: %w", complaintID, err)
	}
	if complaint == nil {
		return nil, fmt.Errorf("assign complaint: complaint=%d: %w", complaintID, domain.ErrNotFound)
	}

	emp, err := s.directory.FindEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("assign complaint: find employee=%d: %w", employeeID, err)
	}
	if emp == nil {
		return nil, fmt.Errorf("assign complaint: employee=%d: %w", employeeID, domain.ErrNotFound)
	}

	complaint.AssignedEmployeeID = &employeeID
	complaint.UpdatedAt = s.now()

	saved, err := s.complaints.Save(ctx, complaint)
	if err != nil {
		return nil, fmt.Errorf("assign complaint: save complaint=%d: %w", complaintID, err)
	}
	return saved, nil
}

// ListComplaintsByStatus returns complaints in one state; an empty
// status returns all.
func (s *ComplaintService) ListComplaintsByStatus(ctx context.Context, status domain.ComplaintStatus) ([]*domain.Complaint, error) {
	if status == "" {
		complaints, err := s.complaints.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list complaints: %w", err)
		}
		return complaints, nil
	}

	complaints, err := s.complaints.ListByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("list complaints by status: %w", err)
	}
	return complaints, nil
}

func (s *ComplaintService) publishComplaintUpdate(ctx context.Context, complaint *domain.Complaint) {
	event := ports.Event{
		Type:  ports.EventComplaintUpdate,
		Topic: fmt.Sprintf("/topic/complaints/%d", complaint.CitizenID),
		Payload: map[string]any{
			"complaintId": complaint.ID,
			"status":      complaint.Status,
		},
		Timestamp: s.now(),
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		log.Printf("publish complaint update failed: complaint=%d err=%v", complaint.ID, err)
	}
}
