package ports

import (
	"context"

	"waste-ops-service/internal/domain"
)

// Port: complaint storage.
type ComplaintRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Complaint, error)
	Save(ctx context.Context, c *domain.Complaint) (*domain.Complaint, error)
	ListByCitizen(ctx context.Context, citizenID int64) ([]*domain.Complaint, error)
	ListByStatus(ctx context.Context, status domain.ComplaintStatus) ([]*domain.Complaint, error)
	List(ctx context.Context) ([]*domain.Complaint, error)
}
