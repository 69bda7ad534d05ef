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

func newBinFixture(bins ...*domain.SmartBin) (*BinService, *notify.CaptureNotifier) {
	notifier := notify.NewCaptureNotifier()
	svc := NewBinService(memory.NewBinRepository(bins...), notifier)
	svc.now = fixedClock(time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC))
	return svc, notifier
}

func TestReportFillLevelAlertsOnCrossing(t *testing.T) {
	svc, notifier := newBinFixture(&domain.SmartBin{
		BinID:  "BIN-1201",
		Status: domain.BinNormal,
	})

	bin, err := svc.ReportFillLevel(context.Background(), "BIN-1201", 85)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bin.Status != domain.BinFull {
		t.Fatalf("status = %s, want FULL", bin.Status)
	}
	if len(notifier.Events()) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(notifier.Events()))
	}
	if notifier.Events()[0].Topic != "/topic/alerts" {
		t.Fatalf("topic = %q", notifier.Events()[0].Topic)
	}

	// Staying above the threshold must not alert again.
	if _, err := svc.ReportFillLevel(context.Background(), "BIN-1201", 92); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.Events()) != 1 {
		t.Fatalf("expected no second alert, got %d events", len(notifier.Events()))
	}

	// Dropping below resets, so the next crossing alerts again.
	if _, err := svc.ReportFillLevel(context.Background(), "BIN-1201", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ReportFillLevel(context.Background(), "BIN-1201", 80); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifier.Events()) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(notifier.Events()))
	}
}

func TestReportFillLevelMaintenanceBin(t *testing.T) {
	svc, notifier := newBinFixture(&domain.SmartBin{
		BinID:  "BIN-0901",
		Status: domain.BinMaintenance,
	})

	bin, err := svc.ReportFillLevel(context.Background(), "BIN-0901", 95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bin.Status != domain.BinMaintenance {
		t.Fatalf("status = %s, maintenance bins keep their status", bin.Status)
	}
	if len(notifier.Events()) != 0 {
		t.Fatal("maintenance bins must not alert")
	}
}

func TestReportFillLevelUnknownBin(t *testing.T) {
	svc, _ := newBinFixture()

	_, err := svc.ReportFillLevel(context.Background(), "BIN-404", 50)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
