package analysis

// LevelBound is one row of a level table: scores at or below Max map to
// Level, unless a lower bound already claimed them.
type LevelBound struct {
	Level RiskLevel `yaml:"level" json:"level"`
	Max   float64   `yaml:"max" json:"max"`
}

// LevelTable maps numeric risk scores onto ordered categorical levels. Rows
// must be sorted by ascending Max; the table is configuration, not a
// hardcoded constant, so 3- and 5-level granularities can coexist.
type LevelTable []LevelBound

// ThreeLevels returns the coarse low/medium/high table.
func ThreeLevels() LevelTable {
	return LevelTable{
		{RiskLow, 0.3},
		{RiskMedium, 0.7},
		{RiskHigh, 1.0},
	}
}

// FiveLevels returns the fine-grained five-level table.
func FiveLevels() LevelTable {
	return LevelTable{
		{RiskVeryLow, 0.2},
		{RiskLow, 0.4},
		{RiskMedium, 0.6},
		{RiskHigh, 0.8},
		{RiskVeryHigh, 1.0},
	}
}

// Classify returns the first level whose upper bound is at or above the
// score. Scores past the last bound (floating point drift) map to the
// highest level.
func (t LevelTable) Classify(score float64) RiskLevel {
	if len(t) == 0 {
		return RiskMedium
	}
	for _, bound := range t {
		if score <= bound.Max {
			return bound.Level
		}
	}
	return t[len(t)-1].Level
}

// Highest returns the most severe level in the table.
func (t LevelTable) Highest() RiskLevel {
	if len(t) == 0 {
		return RiskMedium
	}
	return t[len(t)-1].Level
}
