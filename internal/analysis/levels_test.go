package analysis

import "testing"

// TestLevelTable_Coverage sweeps [0,1] at fine granularity and verifies every
// score maps to exactly one level with no gaps.
func TestLevelTable_Coverage(t *testing.T) {
	tables := map[string]LevelTable{
		"three": ThreeLevels(),
		"five":  FiveLevels(),
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			for i := 0; i <= 10000; i++ {
				score := float64(i) / 10000.0
				level := table.Classify(score)
				if level == "" {
					t.Fatalf("score %v mapped to no level", score)
				}
			}
		})
	}
}

// TestLevelTable_Monotonic verifies severity never decreases as the score
// grows.
func TestLevelTable_Monotonic(t *testing.T) {
	table := FiveLevels()

	rank := map[RiskLevel]int{
		RiskVeryLow:  0,
		RiskLow:      1,
		RiskMedium:   2,
		RiskHigh:     3,
		RiskVeryHigh: 4,
	}

	prev := -1
	for i := 0; i <= 1000; i++ {
		score := float64(i) / 1000.0
		r := rank[table.Classify(score)]
		if r < prev {
			t.Fatalf("severity decreased at score %v", score)
		}
		prev = r
	}
}

// TestLevelTable_Boundaries pins the inclusive upper-bound behavior at exact
// threshold values.
func TestLevelTable_Boundaries(t *testing.T) {
	three := ThreeLevels()
	tests := []struct {
		score float64
		want  RiskLevel
	}{
		{0.0, RiskLow},
		{0.3, RiskLow},
		{0.30001, RiskMedium},
		{0.7, RiskMedium},
		{0.70001, RiskHigh},
		{1.0, RiskHigh},
	}
	for _, tt := range tests {
		if got := three.Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

// TestLevelTable_Overflow verifies scores past the last bound map to the
// highest level.
func TestLevelTable_Overflow(t *testing.T) {
	if got := FiveLevels().Classify(1.0000001); got != RiskVeryHigh {
		t.Errorf("overflow mapped to %s, want %s", got, RiskVeryHigh)
	}
	if got := ThreeLevels().Classify(2.0); got != RiskHigh {
		t.Errorf("overflow mapped to %s, want %s", got, RiskHigh)
	}
}

// TestLevelTable_Empty verifies the neutral fallback for an unconfigured
// table.
func TestLevelTable_Empty(t *testing.T) {
	var table LevelTable
	if got := table.Classify(0.9); got != RiskMedium {
		t.Errorf("empty table mapped to %s, want %s", got, RiskMedium)
	}
	if got := table.Highest(); got != RiskMedium {
		t.Errorf("empty table highest = %s, want %s", got, RiskMedium)
	}
}

// TestLevelTable_Highest verifies the most severe level lookup.
func TestLevelTable_Highest(t *testing.T) {
	if got := ThreeLevels().Highest(); got != RiskHigh {
		t.Errorf("three-level highest = %s, want %s", got, RiskHigh)
	}
	if got := FiveLevels().Highest(); got != RiskVeryHigh {
		t.Errorf("five-level highest = %s, want %s", got, RiskVeryHigh)
	}
}
