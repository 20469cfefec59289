package analysis

import (
	"math"
	"sort"
	"strings"
)

// Confidence sub-score weights. They sum to 1.0.
const (
	weightTextQuality  = 0.25
	weightDecisiveness = 0.30
	weightContext      = 0.25
	weightRichness     = 0.20

	// Per-field credit for present, non-placeholder context fields.
	contextFieldCredit = 0.05

	// Analysis richness credits, capped at the richness weight budget.
	concernsCredit   = 0.07
	indicatorsCredit = 0.07
	keyPhrasesCredit = 0.06
)

// ConfidenceScorer estimates how much a risk score should be trusted, based
// purely on input richness. The classifier's self-reported confidence is
// never consulted.
type ConfidenceScorer struct {
	steepness     float64
	midpoint      float64
	minConfidence float64
	maxConfidence float64
}

// NewConfidenceScorer creates a scorer with the canonical sigmoid shaping:
// steepness 6.0 around a 0.5 midpoint, operating range [0.15, 0.95].
// Confidence never reports absolute certainty or absolute zero.
func NewConfidenceScorer() *ConfidenceScorer {
	return &ConfidenceScorer{
		steepness:     6.0,
		midpoint:      0.5,
		minConfidence: 0.15,
		maxConfidence: 0.95,
	}
}

// Score produces a confidence score within the operating range. A failed
// classification yields the floor value and degraded=true.
func (s *ConfidenceScorer) Score(text string, res ClassificationResult, employee EmployeeContext) (score float64, degraded bool) {
	if res.Failed() {
		return s.minConfidence, true
	}

	words := wordCount(text)

	parts := []factor{
		{textQuality(words), weightTextQuality},
		{decisiveness(res.SentimentScores), weightDecisiveness},
		{contextCompleteness(employee), weightContext},
		{analysisRichness(res), weightRichness},
	}

	sum, totalWeight := weightedSum(parts)
	normalized := sum / totalWeight

	// Sigmoid reshaping spreads mid-range scores toward the extremes so
	// results do not cluster near 0.5, then rescale into the operating range.
	scaled := 1.0 / (1.0 + math.Exp(-s.steepness*(normalized-s.midpoint)))
	confidence := s.minConfidence + scaled*(s.maxConfidence-s.minConfidence)

	// Very short feedback caps achievable confidence regardless of the other
	// signals.
	switch {
	case words < 20:
		confidence *= 0.7
	case words < 50:
		confidence *= 0.85
	}

	return clamp(confidence, s.minConfidence, s.maxConfidence), false
}

// Floor returns the lowest confidence the scorer will ever report.
func (s *ConfidenceScorer) Floor() float64 { return s.minConfidence }

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// textQuality is a step function of word count. Very long text is mildly
// penalized as a proxy for diluted signal.
func textQuality(words int) float64 {
	switch {
	case words < 10:
		return 0.1
	case words < 30:
		return 0.3
	case words < 100:
		return 0.6
	case words < 300:
		return 0.8
	default:
		return 0.7
	}
}

// decisiveness measures how clearly the classifier separated the top two
// sentiment candidates. Without a score distribution it falls back to fixed
// defaults.
func decisiveness(scores map[Sentiment]float64) float64 {
	switch len(scores) {
	case 0:
		return 0.3
	case 1:
		return 0.5
	}

	values := make([]float64, 0, len(scores))
	for _, v := range scores {
		values = append(values, v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	gap := (values[0] - values[1]) * 2.0
	return clamp(gap, 0.0, 1.0)
}

// contextCompleteness credits each context field that is present and not a
// placeholder, normalized onto [0,1] within the context weight budget.
func contextCompleteness(employee EmployeeContext) float64 {
	var credits float64
	if fieldPresent(employee.Department) {
		credits += contextFieldCredit
	}
	if fieldPresent(employee.Position) {
		credits += contextFieldCredit
	}
	if employee.TenureMonths > 0 {
		credits += contextFieldCredit
	}
	if employee.ManagerRating >= 1 && employee.ManagerRating <= 5 {
		credits += contextFieldCredit
	}
	if employee.PerformanceRating >= 1 && employee.PerformanceRating <= 5 {
		credits += contextFieldCredit
	}
	return credits / weightContext
}

func fieldPresent(s string) bool {
	return s != "" && !strings.EqualFold(s, UnknownValue)
}

// analysisRichness credits non-empty concern, indicator, and key-phrase
// lists, capped at the richness weight budget and normalized onto [0,1].
func analysisRichness(res ClassificationResult) float64 {
	var credits float64
	if len(res.KeyConcerns) > 0 {
		credits += concernsCredit
	}
	if len(res.PositiveIndicators) > 0 {
		credits += indicatorsCredit
	}
	if len(res.KeyPhrases) > 0 {
		credits += keyPhrasesCredit
	}
	if credits > weightRichness {
		credits = weightRichness
	}
	return credits / weightRichness
}
