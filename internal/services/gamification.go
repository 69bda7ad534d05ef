package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"waste-ops-service/internal/domain"
	"waste-ops-service/internal/ports"
)

const (
	pointsPerCollection        = 10
	collectedBonusPoints       = 5
	pointsPerComplaintResolved = 20
	pointsForRouteCompletion   = 50
	streakBonusMultiplier      = 2
)

// GamificationService maintains the per-employee point tally, badge and
// level. Awards are read-modify-write sequences on a single row;
// concurrent awards for the same employee are serialized with a
// per-employee mutex so none are lost.
type GamificationService struct {
	performance ports.PerformanceRepository
	notifier    ports.Notifier
	locks       sync.Map // employee id -> *sync.Mutex
	now         func() time.Time
}

func NewGamificationService(performance ports.PerformanceRepository, notifier ports.Notifier) *GamificationService {
	return &GamificationService{
		performance: performance,
		notifier:    notifier,
		now:         time.Now,
	}
}

// AwardPointsForCollection awards base points for one collection
// record, plus a bonus when the stop was actually collected.
func (s *GamificationService) AwardPointsForCollection(
	ctx context.Context,
	employeeID int64,
	record *domain.CollectionRecord,
) (*domain.EmployeePerformance, error) {
	points := pointsPerCollection
	if record.Status == domain.CollectionCollected {
		points += collectedBonusPoints
	}

	return s.award(ctx, employeeID, points, func(perf *domain.EmployeePerformance) {})
}

// AwardPointsForComplaintResolution awards a flat bonus and counts the
// resolution.
func (s *GamificationService) AwardPointsForComplaintResolution(ctx context.Context, employeeID int64) (*domain.EmployeePerformance, error) {
	return s.award(ctx, employeeID, pointsPerComplaintResolved, func(perf *domain.EmployeePerformance) {
		perf.ComplaintsResolved++
	})
}

// AwardPointsForRouteCompletion awards the route bonus, doubled when
// the employee is on a streak (all-or-nothing, not incremental).
func (s *GamificationService) AwardPointsForRouteCompletion(ctx context.Context, employeeID, routeID int64) (*domain.EmployeePerformance, error) {
	lock := s.lockFor(employeeID)
	lock.Lock()
	defer lock.Unlock()

	perf, err := s.getOrCreate(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	points := pointsForRouteCompletion
	if perf.StreakDays > 0 {
		points *= streakBonusMultiplier
	}
	perf.RoutesCompleted++

	log.Printf("route completion award: employee=%d route=%d points=%d", employeeID, routeID, points)
	return s.applyAward(ctx, perf, points)
}

// GetPerformance returns the employee's performance row, or nil before
// the first scoring event.
func (s *GamificationService) GetPerformance(ctx context.Context, employeeID int64) (*domain.EmployeePerformance, error) {
	perf, err := s.performance.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("get performance: employee=%d: %w", employeeID, err)
	}
	return perf, nil
}

func (s *GamificationService) award(
	ctx context.Context,
	employeeID int64,
	points int,
	mutate func(*domain.EmployeePerformance),
) (*domain.EmployeePerformance, error) {
	lock := s.lockFor(employeeID)
	lock.Lock()
	defer lock.Unlock()

	perf, err := s.getOrCreate(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	mutate(perf)
	return s.applyAward(ctx, perf, points)
}

// applyAward adds points, recomputes the level and badge, persists the
// row, and emits the achievement event. Persistence failures surface to
// the caller; there is no partial rollback.
func (s *GamificationService) applyAward(ctx context.Context, perf *domain.EmployeePerformance, points int) (*domain.EmployeePerformance, error) {
	perf.TotalPoints += points
	perf.MonthlyPoints += points
	perf.LastUpdated = s.now()
	perf.PerformanceLevel, perf.CurrentBadge = domain.LevelForPoints(perf.TotalPoints)

	saved, err := s.performance.Save(ctx, perf)
	if err != nil {
		return nil, fmt.Errorf("award points: save employee=%d: %w", perf.EmployeeID, err)
	}

	s.publishAchievement(ctx, saved)
	return saved, nil
}

func (s *GamificationService) getOrCreate(ctx context.Context, employeeID int64) (*domain.EmployeePerformance, error) {
	perf, err := s.performance.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("award points: find employee=%d: %w", employeeID, err)
	}
	if perf != nil {
		return perf, nil
	}

	return &domain.EmployeePerformance{
		EmployeeID:       employeeID,
		PerformanceLevel: domain.LevelBronze,
		CurrentBadge:     "Novice Collector",
	}, nil
}

func (s *GamificationService) lockFor(employeeID int64) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(employeeID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *GamificationService) publishAchievement(ctx context.Context, perf *domain.EmployeePerformance) {
	event := ports.Event{
		Type:  ports.EventAchievement,
		Topic: fmt.Sprintf("/topic/achievements/%d", perf.EmployeeID),
		Payload: map[string]any{
			"employeeId": perf.EmployeeID,
			"badge":      perf.CurrentBadge,
			"level":      perf.PerformanceLevel,
			"points":     perf.TotalPoints,
		},
		Timestamp: s.now(),
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		log.Printf("publish achievement failed: employee=%d err=%v", perf.EmployeeID, err)
	}
}
