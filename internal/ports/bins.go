package ports

import (
	"context"

	"waste-ops-service/internal/domain"
)

// Port: smart-bin storage, keyed by the external bin id.
type BinRepository interface {
	FindByBinID(ctx context.Context, binID string) (*domain.SmartBin, error)
	Save(ctx context.Context, bin *domain.SmartBin) (*domain.SmartBin, error)
	List(ctx context.Context) ([]*domain.SmartBin, error)
}
