// Package insights aggregates individual risk assessments into group-level
// summaries: sentiment and risk distributions, average scores, the most
// common concerns, and the subjects that need attention first.
package insights

import (
	"sort"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
)

// DepartmentInsight is the aggregate view of one group of assessments.
// Distribution maps only carry keys that were actually observed; list fields
// are always non-nil so JSON consumers see [] rather than null.
type DepartmentInsight struct {
	TotalFeedback         int                            `json:"total_feedback"`
	SentimentDistribution map[analysis.Sentiment]int     `json:"sentiment_distribution"`
	RiskDistribution      map[analysis.RiskLevel]int     `json:"risk_distribution"`
	AverageRiskScore      float64                        `json:"average_risk_score"`
	AverageConfidence     float64                        `json:"average_confidence"`
	TopConcerns           []string                       `json:"top_concerns"`
	HighRiskSubjects      []string                       `json:"high_risk_subjects"`
}

// GroupKeyFunc extracts the grouping key for a record.
type GroupKeyFunc func(analysis.AssessmentRecord) string

// ByDepartment groups records by the department context field. Records with
// no department fold into the placeholder group.
func ByDepartment(rec analysis.AssessmentRecord) string {
	if rec.Context.Department == "" {
		return analysis.UnknownValue
	}
	return rec.Context.Department
}

// Engine computes group insights from assessment records. It is stateless
// and safe for concurrent use.
type Engine struct {
	highRisk analysis.RiskLevel
	topN     int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithTopConcerns overrides how many concerns a summary reports.
func WithTopConcerns(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

// WithLevelTable aligns the engine with the level granularity the records
// were scored under. Only records at the table's single highest level count
// as high risk.
func WithLevelTable(table analysis.LevelTable) Option {
	return func(e *Engine) { e.highRisk = table.Highest() }
}

// NewEngine creates an insight engine reporting the top five concerns,
// aligned with the three-level table.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		highRisk: analysis.ThreeLevels().Highest(),
		topN:     5,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Aggregate groups records by key and summarizes each group independently.
// An empty input yields an empty, non-nil map.
func (e *Engine) Aggregate(records []analysis.AssessmentRecord, key GroupKeyFunc) map[string]DepartmentInsight {
	groups := make(map[string][]analysis.AssessmentRecord)
	for _, rec := range records {
		k := key(rec)
		groups[k] = append(groups[k], rec)
	}

	out := make(map[string]DepartmentInsight, len(groups))
	for k, recs := range groups {
		out[k] = e.Summarize(recs)
	}
	return out
}

// Summarize computes the aggregate view of one group. An empty group yields
// zero counts, zero averages, and empty lists.
func (e *Engine) Summarize(records []analysis.AssessmentRecord) DepartmentInsight {
	insight := DepartmentInsight{
		SentimentDistribution: make(map[analysis.Sentiment]int),
		RiskDistribution:      make(map[analysis.RiskLevel]int),
		TopConcerns:           []string{},
		HighRiskSubjects:      []string{},
	}
	if len(records) == 0 {
		return insight
	}

	var riskSum, confSum float64
	concernCounts := make(map[string]int)
	concernOrder := []string{}
	seenSubjects := make(map[string]bool)

	for _, rec := range records {
		insight.TotalFeedback++
		insight.SentimentDistribution[rec.Sentiment]++
		insight.RiskDistribution[rec.Assessment.RiskLevel]++
		riskSum += rec.Assessment.RiskScore
		confSum += rec.Assessment.ConfidenceScore

		for _, concern := range rec.Assessment.KeyConcerns {
			if concernCounts[concern] == 0 {
				concernOrder = append(concernOrder, concern)
			}
			concernCounts[concern]++
		}

		if rec.Assessment.RiskLevel == e.highRisk {
			id := rec.Context.SubjectID
			if id != "" && !seenSubjects[id] {
				seenSubjects[id] = true
				insight.HighRiskSubjects = append(insight.HighRiskSubjects, id)
			}
		}
	}

	n := float64(insight.TotalFeedback)
	insight.AverageRiskScore = riskSum / n
	insight.AverageConfidence = confSum / n
	insight.TopConcerns = topConcerns(concernCounts, concernOrder, e.topN)

	return insight
}

// topConcerns ranks concerns by frequency. Ties keep first-seen order, which
// makes the output deterministic for identical inputs.
func topConcerns(counts map[string]int, order []string, n int) []string {
	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
