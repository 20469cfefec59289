// Package analysis implements the deterministic scoring engine that turns a
// sentiment classification plus employee context into a bounded attrition
// risk score, a calibrated confidence score, and a categorical risk level.
package analysis

// Sentiment labels form an ordered vocabulary from very_negative to
// very_positive. Classifiers may use the full seven levels or the coarser
// negative/neutral/positive subset.
type Sentiment string

const (
	SentimentVeryNegative     Sentiment = "very_negative"
	SentimentNegative         Sentiment = "negative"
	SentimentSlightlyNegative Sentiment = "slightly_negative"
	SentimentNeutral          Sentiment = "neutral"
	SentimentSlightlyPositive Sentiment = "slightly_positive"
	SentimentPositive         Sentiment = "positive"
	SentimentVeryPositive     Sentiment = "very_positive"
)

// RiskLevel is an ordered categorical attrition risk level. The same
// vocabulary is used for the classifier's qualitative opinion (input) and the
// engine's own level (output).
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "very_low"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// UnknownValue is the placeholder for absent string context fields.
const UnknownValue = "Unknown"

// EmployeeContext carries the structured attributes supplied alongside a
// piece of feedback. It is read-only for the duration of an assessment.
type EmployeeContext struct {
	SubjectID         string   `json:"subject_id"`
	Department        string   `json:"department"`
	Position          string   `json:"position"`
	TenureMonths      int      `json:"tenure_months"`
	ManagerRating     int      `json:"manager_rating"`
	PerformanceRating int      `json:"performance_rating"`
	PreviousRiskScore *float64 `json:"previous_risk_score,omitempty"`
}

// DefaultContext returns a context with neutral defaults. Decoding a JSON
// request over this value gives per-field defaults for free, the same way
// config.Load decodes YAML over DefaultConfig.
func DefaultContext() EmployeeContext {
	return EmployeeContext{
		Department:        UnknownValue,
		Position:          UnknownValue,
		TenureMonths:      12,
		ManagerRating:     3,
		PerformanceRating: 3,
	}
}

// ClassificationResult is the normalized output of a classification backend.
// All list fields have already been reduced to plain strings at the oracle
// boundary; nothing downstream branches on entry shape.
type ClassificationResult struct {
	Sentiment          Sentiment             `json:"sentiment"`
	AttritionRisk      RiskLevel             `json:"attrition_risk"`
	KeyConcerns        []string              `json:"key_concerns"`
	PositiveIndicators []string              `json:"positive_indicators"`
	RecommendedActions []string              `json:"recommended_actions"`
	KeyPhrases         []string              `json:"key_phrases"`
	SentimentScores    map[Sentiment]float64 `json:"sentiment_scores,omitempty"`

	// OracleConfidence is the backend's self-reported confidence. It is kept
	// for transparency only; the engine always computes its own.
	OracleConfidence float64 `json:"oracle_confidence"`

	// Error marks the result as a classification failure. Scorers treat a
	// failed result as degraded input, never as something to propagate.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the result carries an explicit failure marker.
func (r ClassificationResult) Failed() bool { return r.Error != "" }

// RiskAssessment is the engine's output for one piece of feedback. It is a
// pure function of (ClassificationResult, EmployeeContext) and is never
// mutated after creation.
type RiskAssessment struct {
	RiskScore          float64   `json:"risk_score"`
	RiskLevel          RiskLevel `json:"risk_level"`
	ConfidenceScore    float64   `json:"confidence_score"`
	KeyConcerns        []string  `json:"key_concerns"`
	PositiveIndicators []string  `json:"positive_indicators"`
	RecommendedActions []string  `json:"recommended_actions"`

	// Degraded is set when the assessment was produced without a usable
	// classification. The scores are then fixed neutral values.
	Degraded bool `json:"degraded"`
}

// AssessmentRecord pairs an assessment with the context and sentiment it was
// scored under, which is what aggregation operates on.
type AssessmentRecord struct {
	Context    EmployeeContext `json:"employee_context"`
	Sentiment  Sentiment       `json:"sentiment"`
	Assessment RiskAssessment  `json:"assessment"`
}
