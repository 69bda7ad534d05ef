package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"waste-ops-service/internal/domain"
)

// Postgres-backed implementation of the BinRepository port.
type SQLBinRepository struct{ DB *sql.DB }

func NewSQLBinRepository(db *sql.DB) *SQLBinRepository {
	return &SQLBinRepository{DB: db}
}

const binColumns = `id, bin_id, latitude, longitude, capacity_liters, current_fill_level, status, last_updated`

func (s *SQLBinRepository) FindByBinID(ctx context.Context, binID string) (*domain.SmartBin, error) {
	if s.DB == nil {
		return nil, errors.New("bin repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT `+binColumns+`
	FROM smart_bins
	WHERE bin_id = $1;
	`, binID)

	bin, err := scanBin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find bin: bin_id=%q: %w", binID, err)
	}
	return bin, nil
}

func (s *SQLBinRepository) Save(ctx context.Context, bin *domain.SmartBin) (*domain.SmartBin, error) {
	if s.DB == nil {
		return nil, errors.New("bin repository: DB is nil")
	}

	err := s.DB.QueryRowContext(ctx, `
	INSERT INTO smart_bins (bin_id, latitude, longitude, capacity_liters, current_fill_level, status, last_updated)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (bin_id) DO UPDATE
	SET latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		capacity_liters = EXCLUDED.capacity_liters,
		current_fill_level = EXCLUDED.current_fill_level,
		status = EXCLUDED.status,
		last_updated = EXCLUDED.last_updated
	RETURNING id;
	`,
		bin.BinID, bin.Location.Lat, bin.Location.Lng,
		bin.CapacityLiters, bin.CurrentFillLevel, string(bin.Status), bin.LastUpdated,
	).Scan(&bin.ID)
	if err != nil {
		return nil, fmt.Errorf("save bin: bin_id=%q: %w", bin.BinID, err)
	}
	return bin, nil
}

func (s *SQLBinRepository) List(ctx context.Context) ([]*domain.SmartBin, error) {
	if s.DB == nil {
		return nil, errors.New("bin repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT `+binColumns+`
	FROM smart_bins
	ORDER BY bin_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list bins: query: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.SmartBin, 0, 16)
	for rows.Next() {
		bin, err := scanBin(rows)
		if err != nil {
			return nil, fmt.Errorf("list bins: scan row: %w", err)
		}
		out = append(out, bin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bins: row iteration: %w", err)
	}
	return out, nil
}

func scanBin(row rowScanner) (*domain.SmartBin, error) {
	var (
		bin    domain.SmartBin
		status string
	)
	err := row.Scan(
		&bin.ID, &bin.BinID, &bin.Location.Lat, &bin.Location.Lng,
		&bin.CapacityLiters, &bin.CurrentFillLevel, &status, &bin.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	bin.Status = domain.BinStatus(status)
	return &bin, nil
}
