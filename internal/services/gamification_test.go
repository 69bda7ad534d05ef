package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"waste-ops-service/internal/adapters/notify"
	"waste-ops-service/internal/adapters/repositories/memory"
	"waste-ops-service/internal/domain"
)

func newGamificationFixture() (*GamificationService, *memory.PerformanceRepository, *notify.CaptureNotifier) {
	repo := memory.NewPerformanceRepository()
	notifier := notify.NewCaptureNotifier()
	svc := NewGamificationService(repo, notifier)
	svc.now = fixedClock(time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC))
	return svc, repo, notifier
}

func TestAwardPointsForCollection(t *testing.T) {
	svc, _, _ := newGamificationFixture()

	perf, err := svc.AwardPointsForCollection(context.Background(), 3, &domain.CollectionRecord{
		Status: domain.CollectionCollected,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.TotalPoints != 15 {
		t.Fatalf("points = %d, want 15 for a collected stop", perf.TotalPoints)
	}

	perf, err = svc.AwardPointsForCollection(context.Background(), 3, &domain.CollectionRecord{
		Status: domain.CollectionSkipped,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.TotalPoints != 25 {
		t.Fatalf("points = %d, want 25 after a skipped stop", perf.TotalPoints)
	}
}

func TestAwardPointsForRouteCompletion(t *testing.T) {
	svc, repo, _ := newGamificationFixture()

	perf, err := svc.AwardPointsForRouteCompletion(context.Background(), 3, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.TotalPoints != 50 {
		t.Fatalf("points = %d, want 50 without a streak", perf.TotalPoints)
	}
	if perf.RoutesCompleted != 1 {
		t.Fatalf("routes completed = %d, want 1", perf.RoutesCompleted)
	}

	// Streak doubles the whole bonus, not just part of it.
	perf.StreakDays = 3
	if _, err := repo.Save(context.Background(), perf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	perf, err = svc.AwardPointsForRouteCompletion(context.Background(), 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.TotalPoints != 150 {
		t.Fatalf("points = %d, want 150 after streak bonus", perf.TotalPoints)
	}
}

func TestAwardPointsForComplaintResolution(t *testing.T) {
	svc, _, _ := newGamificationFixture()

	perf, err := svc.AwardPointsForComplaintResolution(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.TotalPoints != 20 {
		t.Fatalf("points = %d, want 20", perf.TotalPoints)
	}
	if perf.ComplaintsResolved != 1 {
		t.Fatalf("complaints resolved = %d, want 1", perf.ComplaintsResolved)
	}
}

func TestLevelPromotionAtThreshold(t *testing.T) {
	svc, repo, _ := newGamificationFixture()

	if _, err := repo.Save(context.Background(), &domain.EmployeePerformance{
		EmployeeID:       3,
		TotalPoints:      985,
		PerformanceLevel: domain.LevelBronze,
		CurrentBadge:     "Novice Collector",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	perf, err := svc.AwardPointsForCollection(context.Background(), 3, &domain.CollectionRecord{
		Status: domain.CollectionCollected,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if perf.TotalPoints != 1000 {
		t.Fatalf("points = %d, want 1000", perf.TotalPoints)
	}
	if perf.PerformanceLevel != domain.LevelSilver {
		t.Fatalf("level = %s, want SILVER at exactly 1000", perf.PerformanceLevel)
	}
	if perf.CurrentBadge != "Regular Collector" {
		t.Fatalf("badge = %q", perf.CurrentBadge)
	}
}

func TestAwardPublishesAchievement(t *testing.T) {
	svc, _, notifier := newGamificationFixture()

	if _, err := svc.AwardPointsForComplaintResolution(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := notifier.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Topic != "/topic/achievements/42" {
		t.Fatalf("topic = %q", events[0].Topic)
	}
	if events[0].Payload["points"] != 20 {
		t.Fatalf("payload points = %v", events[0].Payload["points"])
	}
}

func TestAwardSurfacesSaveError(t *testing.T) {
	svc, repo, notifier := newGamificationFixture()
	repo.SaveErr = errors.New("storage offline")

	if _, err := svc.AwardPointsForComplaintResolution(context.Background(), 3); err == nil {
		t.Fatal("expected save error to surface")
	}
	if len(notifier.Events()) != 0 {
		t.Fatal("no achievement should be published when the save fails")
	}
}

func TestConcurrentAwardsAreNotLost(t *testing.T) {
	svc, _, _ := newGamificationFixture()

	const workers = 20
	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AwardPointsForCollection(context.Background(), 3, &domain.CollectionRecord{
				Status: domain.CollectionCollected,
			})
			if err != nil {
				errCh <- fmt.Errorf("award: %w", err)
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatal(err)
	}

	perf, err := svc.GetPerformance(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perf.TotalPoints != workers*15 {
		t.Fatalf("points = %d, want %d", perf.TotalPoints, workers*15)
	}
}
