package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

// BinService tracks smart-bin fill levels and raises alerts when a bin
// crosses the full threshold.
type BinService struct {
	bins     ports.BinRepository
	notifier ports.Notifier
	now      func() time.Time
}

func NewBinService(bins ports.BinRepository, notifier ports.Notifier) *BinService {
	return &BinService{
		bins:     bins,
		notifier: notifier,
		now:      time.Now,
	}
}

// ReportFillLevel records a sensor reading. Crossing the full threshold
// flips the bin to FULL and emits a BIN_ALERT; readings below it return
// the bin to NORMAL unless it is under maintenance.
func (s *BinService) ReportFillLevel(ctx context.Context, binID string, level float64) (*domain.SmartBin, error) {
	bin, err := s.bins.FindByBinID(ctx, binID)
	if err != nil {
		return nil, fmt.Errorf("report fill level: find bin=%q: %w", binID, err)
	}
	if bin == nil {
		return nil, fmt.Errorf("report fill level: bin=%q: %w", binID, domain.ErrNotFound)
	}

	wasFull := bin.Status == domain.BinFull
	bin.CurrentFillLevel = level
	bin.LastUpdated = s.now()

	if bin.Status != domain.BinMaintenance {
		if level >= domain.BinFullThreshold {
			bin.Status = domain.BinFull
		} else {
			bin.Status = domain.BinNormal
		}
	}

	saved, err := s.bins.Save(ctx, bin)
	if err != nil {
		return nil, fmt.Errorf("report fill level: save bin=%q: %w", binID, err)
	}

	if saved.Status == domain.BinFull && !wasFull {
		s.publishBinAlert(ctx, saved)
	}
	return saved, nil
}

// ListBins returns all known bins.
func (s *BinService) ListBins(ctx context.Context) ([]*domain.SmartBin, error) {
	bins, err := s.bins.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bins: %w", err)
	}
	return bins, nil
}

func (s *BinService) publishBinAlert(ctx context.Context, bin *domain.SmartBin) {
	event := ports.Event{
		Type:  ports.EventBinAlert,
		Topic: "/topic/alerts",
		Payload: map[string]any{
			"binId": bin.BinID,
			"location": map[string]float64{
				"lat": bin.Location.Lat,
				"lng": bin.Location.Lng,
			},
			"status":    bin.Status,
			"fillLevel": bin.CurrentFillLevel,
		},
		Timestamp: s.now(),
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		log.Printf("publish bin alert failed: bin=%s err=%v", bin.BinID, err)
	}
}
