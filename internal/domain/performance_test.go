package domain

import "testing"

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		level  PerformanceLevel
		badge  string
	}{
		{0, LevelBronze, "Novice Collector"},
		{999, LevelBronze, "Novice Collector"},
		{1000, LevelSilver, "Regular Collector"},
		{2499, LevelSilver, "Regular Collector"},
		{2500, LevelGold, "Experienced Collector"},
		{5000, LevelPlatinum, "Senior Collector"},
		{9999, LevelPlatinum, "Senior Collector"},
		{10000, LevelDiamond, "Waste Management Expert"},
		{25000, LevelDiamond, "Waste Management Expert"},
	}

	for _, c := range cases {
		level, badge := LevelForPoints(c.points)
		if level != c.level {
			t.Errorf("LevelForPoints(%d) level = %s, want %s", c.points, level, c.level)
		}
		if badge != c.badge {
			t.Errorf("LevelForPoints(%d) badge = %q, want %q", c.points, badge, c.badge)
		}
	}
}
