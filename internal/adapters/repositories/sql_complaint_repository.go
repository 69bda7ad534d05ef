package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"waste-ops-service/internal/domain"
)

// Postgres-backed implementation of the ComplaintRepository port.
type SQLComplaintRepository struct{ DB *sql.DB }

func NewSQLComplaintRepository(db *sql.DB) *SQLComplaintRepository {
	return &SQLComplaintRepository{DB: db}
}

const complaintColumns = `id, citizen_id, title, description, photo_url, latitude, longitude, address, status, priority, assigned_employee_id, created_at, updated_at`

func (s *SQLComplaintRepository) FindByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	if s.DB == nil {
		return nil, errors.New("complaint repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT `+complaintColumns+`
	FROM complaints
	WHERE id = $1;
	`, id)

	complaint, err := scanComplaint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find complaint: id=%d: %w", id, err)
	}
	return complaint, nil
}

func (s *SQLComplaintRepository) Save(ctx context.Context, c *domain.Complaint) (*domain.Complaint, error) {
	if s.DB == nil {
		return nil, errors.New("complaint repository: DB is nil")
	}

	if c.ID == 0 {
		err := s.DB.QueryRowContext(ctx, `
		INSERT INTO complaints (citizen_id, title, description, photo_url, latitude, longitude, address, status, priority, assigned_employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id;
		`,
			c.CitizenID, c.Title, c.Description, c.PhotoURL,
			c.Location.Lat, c.Location.Lng, c.Address,
			string(c.Status), string(c.Priority), c.AssignedEmployeeID,
			c.CreatedAt, c.UpdatedAt,
		).Scan(&c.ID)
		if err != nil {
			return nil, fmt.Errorf("insert complaint: citizen=%d: %w", c.CitizenID, err)
		}
		return c, nil
	}

	_, err := s.DB.ExecContext(ctx, `
	UPDATE complaints
	SET status = $2, priority = $3, assigned_employee_id = $4, updated_at = $5
	WHERE id = $1;
	`, c.ID, string(c.Status), string(c.Priority), c.AssignedEmployeeID, c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update complaint: id=%d: %w", c.ID, err)
	}
	return c, nil
}

func (s *SQLComplaintRepository) ListByCitizen(ctx context.Context, citizenID int64) ([]*domain.Complaint, error) {
	return s.queryComplaints(ctx, `
	SELECT `+complaintColumns+`
	FROM complaints
	WHERE citizen_id = $1
	ORDER BY id;
	`, citizenID)
}

func (s *SQLComplaintRepository) ListByStatus(ctx context.Context, status domain.ComplaintStatus) ([]*domain.Complaint, error) {
	return s.queryComplaints(ctx, `
	SELECT `+complaintColumns+`
	FROM complaints
	WHERE status = $1
	ORDER BY id;
	`, string(status))
}

func (s *SQLComplaintRepository) List(ctx context.Context) ([]*domain.Complaint, error) {
	return s.queryComplaints(ctx, `
	SELECT `+complaintColumns+`
	FROM complaints
	ORDER BY id;
	`)
}

func (s *SQLComplaintRepository) queryComplaints(ctx context.Context, query string, args ...any) ([]*domain.Complaint, error) {
	if s.DB == nil {
		return nil, errors.New("complaint repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list complaints: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Complaint, 0, 16)
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("list complaints: scan row: %w", err)
		}
		out = append(out, complaint)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list complaints: row iteration: %w", err)
	}
	return out, nil
}

func scanComplaint(row rowScanner) (*domain.Complaint, error) {
	var (
		c        domain.Complaint
		status   string
		priority string
		assigned sql.NullInt64
	)
	err := row.Scan(
		&c.ID, &c.CitizenID, &c.Title, &c.Description, &c.PhotoURL,
		&c.Location.Lat, &c.Location.Lng, &c.Address,
		&status, &priority, &assigned,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Status = domain.ComplaintStatus(status)
	c.Priority = domain.ComplaintPriority(priority)
	if assigned.Valid {
		c.AssignedEmployeeID = &assigned.Int64
	}
	return &c, nil
}
