package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"waste-ops-service/internal/adapters/notify"
	"waste-ops-service/internal/adapters/repositories/memory"
	"waste-ops-service/internal/domain"
)

func newComplaintFixture() (*ComplaintService, *memory.ComplaintRepository, *notify.CaptureNotifier) {
	repo := memory.NewComplaintRepository()
	directory := memory.NewEmployeeDirectory(
		&domain.Employee{ID: 3, Name: "Meera", Role: domain.RoleEmployee},
		&domain.Employee{ID: 5, Name: "Lata", Role: domain.RoleCitizen},
	)
	notifier := notify.NewCaptureNotifier()
	svc := NewComplaintService(repo, directory, notifier)
	svc.now = fixedClock(time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC))
	return svc, repo, notifier
}

func TestCreateComplaintDefaults(t *testing.T) {
	svc, _, _ := newComplaintFixture()

	complaint, err := svc.CreateComplaint(
		context.Background(),
		5,
		"Overflowing bin", "Bin at the corner has not been emptied", "",
		12.9716, 77.5946,
		"MG Road, Ward 12",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if complaint.Status != domain.ComplaintPending {
		t.Fatalf("status = %s, want PENDING", complaint.Status)
	}
	if complaint.Priority != domain.PriorityMedium {
		t.Fatalf("priority = %s, want MEDIUM", complaint.Priority)
	}
	if complaint.ID == 0 {
		t.Fatal("expected assigned id")
	}
}

func TestCreateComplaintUnknownCitizen(t *testing.T) {
	svc, _, _ := newComplaintFixture()

	_, err := svc.CreateComplaint(context.Background(), 99, "t", "d", "", 0, 0, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateComplaintStatusNotifiesCitizen(t *testing.T) {
	svc, _, notifier := newComplaintFixture()

	complaint, err := svc.CreateComplaint(context.Background(), 5, "t", "d", "", 0, 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateComplaintStatus(context.Background(), complaint.ID, domain.ComplaintInProgress)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.ComplaintInProgress {
		t.Fatalf("status = %s, want IN_PROGRESS", updated.Status)
	}

	events := notifier.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Topic != "/topic/complaints/5" {
		t.Fatalf("topic = %q", events[0].Topic)
	}
}

func TestUpdateComplaintStatusUnknown(t *testing.T) {
	svc, _, _ := newComplaintFixture()

	_, err := svc.UpdateComplaintStatus(context.Background(), 99, domain.ComplaintResolved)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssignEmployee(t *testing.T) {
	svc, _, _ := newComplaintFixture()

	complaint, err := svc.CreateComplaint(context.Background(), 5, "t", "d", "", 0, 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assigned, err := svc.AssignEmployee(context.Background(), complaint.ID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assigned.AssignedEmployeeID == nil || *assigned.AssignedEmployeeID != 3 {
		t.Fatalf("assigned employee = %v, want 3", assigned.AssignedEmployeeID)
	}

	if _, err := svc.AssignEmployee(context.Background(), complaint.ID, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown employee, got %v", err)
	}
}

func TestListComplaintsByStatus(t *testing.T) {
	svc, _, _ := newComplaintFixture()

	first, err := svc.CreateComplaint(context.Background(), 5, "a", "d", "", 0, 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateComplaint(context.Background(), 5, "b", "d", "", 0, 0, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.UpdateComplaintStatus(context.Background(), first.ID, domain.ComplaintResolved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := svc.ListComplaintsByStatus(context.Background(), domain.ComplaintPending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending complaint, got %d", len(pending))
	}

	all, err := svc.ListComplaintsByStatus(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 complaints, got %d", len(all))
	}
}
