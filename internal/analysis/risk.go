package analysis

import "math"

// Factor weights. They sum to 1.0 across the five factors.
const (
	weightSentiment   = 0.30
	weightRiskOpinion = 0.25
	weightTenure      = 0.15
	weightRatings     = 0.20
	weightConcerns    = 0.10

	// degradedRiskScore is returned when the classification carries an
	// explicit failure marker.
	degradedRiskScore = 0.5

	// trendFold is the fraction of the directional change versus the
	// previous known score that is folded into the result.
	trendFold = 0.2

	// concernIncrement is the per-concern risk contribution, saturating at 1.0.
	concernIncrement = 0.15
)

// defaultSentimentScores maps the sentiment vocabulary monotonically onto
// [0,1]. Neutral sits at the 0.5 midpoint; unknown labels score as neutral.
func defaultSentimentScores() map[Sentiment]float64 {
	return map[Sentiment]float64{
		SentimentVeryNegative:     0.0,
		SentimentNegative:         0.2,
		SentimentSlightlyNegative: 0.35,
		SentimentNeutral:          0.5,
		SentimentSlightlyPositive: 0.65,
		SentimentPositive:         0.8,
		SentimentVeryPositive:     1.0,
	}
}

// defaultRiskOpinions maps the classifier's qualitative risk label onto a
// numeric opinion. Unknown labels score as the 0.5 midpoint.
func defaultRiskOpinions() map[RiskLevel]float64 {
	return map[RiskLevel]float64{
		RiskVeryLow:  0.1,
		RiskLow:      0.3,
		RiskMedium:   0.5,
		RiskHigh:     0.7,
		RiskVeryHigh: 0.9,
	}
}

// tenureStep is one row of the tenure step function: tenure strictly below
// MaxMonths scores Value.
type tenureStep struct {
	MaxMonths int
	Value     float64
}

// defaultTenureSteps is monotonic non-increasing in tenure. Tenure at or
// beyond the last bound scores tenureFloor.
func defaultTenureSteps() []tenureStep {
	return []tenureStep{
		{3, 0.8},
		{6, 0.6},
		{12, 0.4},
		{24, 0.3},
		{36, 0.2},
	}
}

const tenureFloor = 0.1

// factor is a single weighted contribution to a score. Scores are computed
// as an explicit factor list summed functionally so the weight table stays a
// first-class, testable artifact.
type factor struct {
	value  float64
	weight float64
}

func weightedSum(factors []factor) (sum, totalWeight float64) {
	for _, f := range factors {
		sum += f.value * f.weight
		totalWeight += f.weight
	}
	return sum, totalWeight
}

// RiskScorer combines a classification and employee context into a bounded
// attrition risk score. The lookup tables are immutable per-instance values,
// so alternate configurations can coexist.
type RiskScorer struct {
	sentimentScores map[Sentiment]float64
	riskOpinions    map[RiskLevel]float64
	tenureSteps     []tenureStep
}

// RiskOption customizes a RiskScorer.
type RiskOption func(*RiskScorer)

// WithSentimentScores overrides the sentiment-to-score table.
func WithSentimentScores(scores map[Sentiment]float64) RiskOption {
	return func(s *RiskScorer) { s.sentimentScores = scores }
}

// WithRiskOpinions overrides the qualitative risk label lookup.
func WithRiskOpinions(opinions map[RiskLevel]float64) RiskOption {
	return func(s *RiskScorer) { s.riskOpinions = opinions }
}

// NewRiskScorer creates a scorer with the default tables.
func NewRiskScorer(opts ...RiskOption) *RiskScorer {
	s := &RiskScorer{
		sentimentScores: defaultSentimentScores(),
		riskOpinions:    defaultRiskOpinions(),
		tenureSteps:     defaultTenureSteps(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score produces a risk score in [0,1] for the given classification and
// context. A failed classification yields the fixed neutral score and
// degraded=true; Score never fails.
func (s *RiskScorer) Score(res ClassificationResult, employee EmployeeContext) (score float64, degraded bool) {
	if res.Failed() {
		return degradedRiskScore, true
	}

	factors := []factor{
		{1.0 - s.sentimentScore(res.Sentiment), weightSentiment},
		{s.riskOpinion(res.AttritionRisk), weightRiskOpinion},
		{s.tenureFactor(employee.TenureMonths), weightTenure},
		{ratingFactor(employee.ManagerRating, employee.PerformanceRating), weightRatings},
		{concernFactor(len(res.KeyConcerns)), weightConcerns},
	}

	sum, _ := weightedSum(factors)

	if employee.PreviousRiskScore != nil {
		sum += (sum - *employee.PreviousRiskScore) * trendFold
	}

	return clamp(sum, 0.0, 1.0), false
}

func (s *RiskScorer) sentimentScore(sent Sentiment) float64 {
	if v, ok := s.sentimentScores[sent]; ok {
		return v
	}
	return 0.5
}

func (s *RiskScorer) riskOpinion(level RiskLevel) float64 {
	if v, ok := s.riskOpinions[level]; ok {
		return v
	}
	return 0.5
}

func (s *RiskScorer) tenureFactor(months int) float64 {
	if months < 0 {
		months = 0
	}
	for _, step := range s.tenureSteps {
		if months < step.MaxMonths {
			return step.Value
		}
	}
	return tenureFloor
}

// ratingFactor derives risk from the two 1-5 ratings, each inverted via
// (6-rating)/4. The manager component is weighted higher than performance.
func ratingFactor(manager, performance int) float64 {
	return 0.6*invertRating(manager) + 0.4*invertRating(performance)
}

// invertRating maps a 1-5 rating to a risk contribution. Out-of-range values
// are treated as the neutral rating 3 rather than rejected.
func invertRating(rating int) float64 {
	if rating < 1 || rating > 5 {
		rating = 3
	}
	return float64(6-rating) / 4.0
}

// concernFactor raises risk per distinct concern up to a saturation point.
func concernFactor(count int) float64 {
	return math.Min(1.0, float64(count)*concernIncrement)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
