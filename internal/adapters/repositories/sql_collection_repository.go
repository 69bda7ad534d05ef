package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"waste-ops-service/internal/domain"
)

// Postgres-backed implementation of the CollectionRecordRepository
// port. Records are append-only; there is no update statement here.
type SQLCollectionRecordRepository struct{ DB *sql.DB }

func NewSQLCollectionRecordRepository(db *sql.DB) *SQLCollectionRecordRepository {
	return &SQLCollectionRecordRepository{DB: db}
}

const collectionColumns = `id, route_id, waypoint_id, employee_id, status, collected_at, collection_date, photo_url, latitude, longitude, remark`

func (s *SQLCollectionRecordRepository) Append(ctx context.Context, record *domain.CollectionRecord) (*domain.CollectionRecord, error) {
	if s.DB == nil {
		return nil, errors.New("collection repository: DB is nil")
	}

	err := s.DB.QueryRowContext(ctx, `
	INSERT INTO collection_records (route_id, waypoint_id, employee_id, status, collected_at, collection_date, photo_url, latitude, longitude, remark)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id;
	`,
		record.RouteID,
		record.WaypointID,
		record.EmployeeID,
		string(record.Status),
		record.CollectedAt,
		record.CollectionDate,
		record.PhotoURL,
		record.Location.Lat,
		record.Location.Lng,
		record.Remark,
	).Scan(&record.ID)
	if err != nil {
		return nil, fmt.Errorf("append collection record: route=%d waypoint=%d: %w", record.RouteID, record.WaypointID, err)
	}
	return record, nil
}

func (s *SQLCollectionRecordRepository) FindByID(ctx context.Context, id int64) (*domain.CollectionRecord, error) {
	if s.DB == nil {
		return nil, errors.New("collection repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT `+collectionColumns+`
	FROM collection_records
	WHERE id = $1;
	`, id)

	record, err := scanCollectionRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find collection record: id=%d: %w", id, err)
	}
	return record, nil
}

func (s *SQLCollectionRecordRepository) ListByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) ([]*domain.CollectionRecord, error) {
	return s.queryRecords(ctx, `
	SELECT `+collectionColumns+`
	FROM collection_records
	WHERE employee_id = $1 AND collection_date = $2
	ORDER BY id;
	`, employeeID, date)
}

func (s *SQLCollectionRecordRepository) ListByRoute(ctx context.Context, routeID int64) ([]*domain.CollectionRecord, error) {
	return s.queryRecords(ctx, `
	SELECT `+collectionColumns+`
	FROM collection_records
	WHERE route_id = $1
	ORDER BY id;
	`, routeID)
}

func (s *SQLCollectionRecordRepository) Count(ctx context.Context) (int, error) {
	if s.DB == nil {
		return 0, errors.New("collection repository: DB is nil")
	}

	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM collection_records;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count collection records: %w", err)
	}
	return n, nil
}

func (s *SQLCollectionRecordRepository) CountByEmployee(ctx context.Context, employeeID int64) (int, error) {
	if s.DB == nil {
		return 0, errors.New("collection repository: DB is nil")
	}

	var n int
	err := s.DB.QueryRowContext(ctx, `
	SELECT COUNT(*) FROM collection_records WHERE employee_id = $1;
	`, employeeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count collection records: employee=%d: %w", employeeID, err)
	}
	return n, nil
}

func (s *SQLCollectionRecordRepository) queryRecords(ctx context.Context, query string, args ...any) ([]*domain.CollectionRecord, error) {
	if s.DB == nil {
		return nil, errors.New("collection repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list collection records: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.CollectionRecord, 0, 32)
	for rows.Next() {
		record, err := scanCollectionRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list collection records: scan row: %w", err)
		}
		out = append(out, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list collection records: row iteration: %w", err)
	}
	return out, nil
}

func scanCollectionRecord(row rowScanner) (*domain.CollectionRecord, error) {
	var (
		record         domain.CollectionRecord
		employeeID     sql.NullInt64
		status         string
		collectionDate sql.NullTime
	)
	err := row.Scan(
		&record.ID,
		&record.RouteID,
		&record.WaypointID,
		&employeeID,
		&status,
		&record.CollectedAt,
		&collectionDate,
		&record.PhotoURL,
		&record.Location.Lat,
		&record.Location.Lng,
		&record.Remark,
	)
	if err != nil {
		return nil, err
	}

	if employeeID.Valid {
		record.EmployeeID = &employeeID.Int64
	}
	if collectionDate.Valid {
		record.CollectionDate = &collectionDate.Time
	}
	record.Status = domain.CollectionStatus(status)
	return &record, nil
}
