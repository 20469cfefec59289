package oracle

import (
	"context"
	"strings"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
)

// LexiconClassifier is a deterministic keyword-based backend. It exists so
// the engine works without any external service: in tests, in air-gapped
// deployments, and as a stand-in when no API key is configured. Quality is
// deliberately modest; the scoring engine downstream is unchanged.
type LexiconClassifier struct {
	positive    []string
	negative    []string
	quitSignals []string
	concerns    map[string][]string
}

// NewLexiconClassifier creates a classifier with the built-in lexicon.
func NewLexiconClassifier() *LexiconClassifier {
	return &LexiconClassifier{
		positive: []string{
			"love", "great", "enjoy", "excellent", "appreciate", "happy",
			"supportive", "fantastic", "motivated", "proud", "excited",
		},
		negative: []string{
			"hate", "terrible", "frustrated", "overworked", "burnout",
			"burnt out", "exhausted", "unhappy", "stressed", "toxic",
			"underpaid", "ignored", "micromanage", "awful",
		},
		quitSignals: []string{
			"quit", "leave the company", "leaving", "resign", "new job",
			"looking elsewhere", "other opportunities", "two weeks",
		},
		concerns: map[string][]string{
			"workload":     {"overworked", "workload", "too much work", "long hours", "burnout", "burnt out", "exhausted"},
			"compensation": {"underpaid", "salary", "pay", "compensation", "raise"},
			"management":   {"manager", "management", "micromanage", "leadership"},
			"growth":       {"growth", "promotion", "career", "stagnant", "no opportunities"},
			"recognition":  {"ignored", "recognition", "unappreciated", "invisible"},
			"culture":      {"toxic", "culture", "morale", "politics"},
		},
	}
}

// concernOrder fixes the iteration order over concern categories so repeated
// runs produce identical output.
var concernOrder = []string{"workload", "compensation", "management", "growth", "recognition", "culture"}

// Name returns the classifier identifier.
func (c *LexiconClassifier) Name() string {
	return "lexicon"
}

// HealthCheck always succeeds; the lexicon has no external dependency.
func (c *LexiconClassifier) HealthCheck(ctx context.Context) error {
	return nil
}

// Classify scores the text against the lexicon. It never returns an error.
func (c *LexiconClassifier) Classify(ctx context.Context, text string, employee analysis.EmployeeContext) (*analysis.ClassificationResult, error) {
	lowered := strings.ToLower(text)

	pos := countMatches(lowered, c.positive)
	neg := countMatches(lowered, c.negative)
	quitting := countMatches(lowered, c.quitSignals) > 0

	sentiment := balanceSentiment(pos, neg)

	concerns := []string{}
	for _, category := range concernOrder {
		if countMatches(lowered, c.concerns[category]) > 0 {
			concerns = append(concerns, category)
		}
	}

	risk := lexiconRisk(sentiment, len(concerns), quitting)

	total := pos + neg
	scores := map[analysis.Sentiment]float64{analysis.SentimentNeutral: 1.0}
	if total > 0 {
		posShare := float64(pos) / float64(total)
		scores = map[analysis.Sentiment]float64{
			analysis.SentimentPositive: posShare,
			analysis.SentimentNegative: 1.0 - posShare,
		}
	}

	return &analysis.ClassificationResult{
		Sentiment:          sentiment,
		AttritionRisk:      risk,
		KeyConcerns:        concerns,
		PositiveIndicators: []string{},
		RecommendedActions: []string{},
		KeyPhrases:         []string{},
		SentimentScores:    scores,
		OracleConfidence:   0.4,
	}, nil
}

func countMatches(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}

// balanceSentiment maps the positive/negative term balance onto the
// seven-level vocabulary.
func balanceSentiment(pos, neg int) analysis.Sentiment {
	diff := pos - neg
	switch {
	case diff <= -4:
		return analysis.SentimentVeryNegative
	case diff <= -2:
		return analysis.SentimentNegative
	case diff == -1:
		return analysis.SentimentSlightlyNegative
	case diff == 0:
		return analysis.SentimentNeutral
	case diff == 1:
		return analysis.SentimentSlightlyPositive
	case diff < 4:
		return analysis.SentimentPositive
	default:
		return analysis.SentimentVeryPositive
	}
}

// lexiconRisk derives a qualitative risk opinion. Explicit quit language
// dominates everything else.
func lexiconRisk(sentiment analysis.Sentiment, concernCount int, quitting bool) analysis.RiskLevel {
	if quitting {
		return analysis.RiskVeryHigh
	}
	switch sentiment {
	case analysis.SentimentVeryNegative:
		return analysis.RiskHigh
	case analysis.SentimentNegative:
		if concernCount >= 2 {
			return analysis.RiskHigh
		}
		return analysis.RiskMedium
	case analysis.SentimentSlightlyNegative:
		return analysis.RiskMedium
	case analysis.SentimentNeutral:
		if concernCount >= 2 {
			return analysis.RiskMedium
		}
		return analysis.RiskLow
	default:
		return analysis.RiskLow
	}
}
