package domain

import "time"

type PerformanceLevel string

const (
	LevelBronze   PerformanceLevel = "BRONZE"
	LevelSilver   PerformanceLevel = "SILVER"
	LevelGold     PerformanceLevel = "GOLD"
	LevelPlatinum PerformanceLevel = "PLATINUM"
	LevelDiamond  PerformanceLevel = "DIAMOND"
)

// EmployeePerformance is the per-employee gamification tally. One row
// per employee, created lazily on the first scoring event. Points only
// ever increase, so the level is monotonic non-decreasing.
type EmployeePerformance struct {
	ID                 int64
	EmployeeID         int64
	TotalPoints        int
	MonthlyPoints      int
	StreakDays         int
	RoutesCompleted    int
	ComplaintsResolved int
	LastUpdated        time.Time
	CurrentBadge       string
	PerformanceLevel   PerformanceLevel
}

// LevelForPoints maps a total point tally to its level and badge.
// Thresholds are evaluated highest-first and do not overlap.
func LevelForPoints(totalPoints int) (PerformanceLevel, string) {
	switch {
	case totalPoints >= 10000:
		return LevelDiamond, "Waste Management Expert"
	case totalPoints >= 5000:
		return LevelPlatinum, "Senior Collector"
	case totalPoints >= 2500:
		return LevelGold, "Experienced Collector"
	case totalPoints >= 1000:
		return LevelSilver, "Regular Collector"
	default:
		return LevelBronze, "Novice Collector"
	}
}
