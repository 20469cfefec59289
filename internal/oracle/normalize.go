package oracle

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
)

// rawResult is the wire shape a backend may produce. Models are inconsistent
// about list entry shapes and label spellings, so everything is normalized
// here before it crosses into the engine.
type rawResult struct {
	Sentiment          string             `json:"sentiment"`
	AttritionRisk      string             `json:"attrition_risk"`
	KeyConcerns        StringList         `json:"key_concerns"`
	PositiveIndicators StringList         `json:"positive_indicators"`
	RecommendedActions StringList         `json:"recommended_actions"`
	ImmediateActions   StringList         `json:"immediate_actions"`
	KeyPhrases         StringList         `json:"key_phrases"`
	SentimentScores    map[string]float64 `json:"sentiment_scores"`
	Confidence         float64            `json:"confidence"`
}

// StringList decodes a JSON array whose entries may be plain strings, objects
// carrying the text under a well-known key, numbers, or booleans. Unusable
// entries are dropped rather than failing the whole decode.
type StringList []string

// entryKeys are tried in order when an entry arrives as an object.
var entryKeys = []string{"concern", "indicator", "action", "phrase", "text", "description"}

func (l *StringList) UnmarshalJSON(data []byte) error {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		// A bare string is accepted as a single-entry list.
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		single = strings.TrimSpace(single)
		if single == "" {
			*l = []string{}
		} else {
			*l = []string{single}
		}
		return nil
	}

	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s, ok := reduceEntry(entry); ok {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// reduceEntry collapses one list entry to a plain string.
func reduceEntry(data json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		s = strings.TrimSpace(s)
		return s, s != ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err == nil {
		for _, key := range entryKeys {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var v string
			if err := json.Unmarshal(raw, &v); err == nil {
				v = strings.TrimSpace(v)
				if v != "" {
					return v, true
				}
			}
		}
		return "", false
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64), true
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return strconv.FormatBool(b), true
	}

	return "", false
}

// normalize converts a decoded raw result into the engine's canonical form.
func (r rawResult) normalize() *analysis.ClassificationResult {
	res := &analysis.ClassificationResult{
		Sentiment:          canonicalSentiment(r.Sentiment),
		AttritionRisk:      canonicalRisk(r.AttritionRisk),
		KeyConcerns:        orEmpty(r.KeyConcerns),
		PositiveIndicators: orEmpty(r.PositiveIndicators),
		RecommendedActions: orEmpty(r.RecommendedActions),
		KeyPhrases:         orEmpty(r.KeyPhrases),
		OracleConfidence:   clamp01(r.Confidence),
	}

	// Some backends split urgent actions into a second list; downstream only
	// has one.
	res.RecommendedActions = append(res.RecommendedActions, r.ImmediateActions...)

	if len(r.SentimentScores) > 0 {
		res.SentimentScores = make(map[analysis.Sentiment]float64, len(r.SentimentScores))
		for label, score := range r.SentimentScores {
			res.SentimentScores[canonicalSentiment(label)] = clamp01(score)
		}
	}

	return res
}

// canonicalSentiment maps label variants onto the fixed vocabulary. Anything
// unrecognized falls back to neutral.
func canonicalSentiment(label string) analysis.Sentiment {
	switch analysis.Sentiment(canonicalLabel(label)) {
	case analysis.SentimentVeryNegative:
		return analysis.SentimentVeryNegative
	case analysis.SentimentNegative:
		return analysis.SentimentNegative
	case analysis.SentimentSlightlyNegative:
		return analysis.SentimentSlightlyNegative
	case analysis.SentimentNeutral:
		return analysis.SentimentNeutral
	case analysis.SentimentSlightlyPositive:
		return analysis.SentimentSlightlyPositive
	case analysis.SentimentPositive:
		return analysis.SentimentPositive
	case analysis.SentimentVeryPositive:
		return analysis.SentimentVeryPositive
	default:
		return analysis.SentimentNeutral
	}
}

// canonicalRisk maps label variants onto the fixed vocabulary. Anything
// unrecognized falls back to medium.
func canonicalRisk(label string) analysis.RiskLevel {
	switch analysis.RiskLevel(canonicalLabel(label)) {
	case analysis.RiskVeryLow:
		return analysis.RiskVeryLow
	case analysis.RiskLow:
		return analysis.RiskLow
	case analysis.RiskMedium:
		return analysis.RiskMedium
	case analysis.RiskHigh:
		return analysis.RiskHigh
	case analysis.RiskVeryHigh:
		return analysis.RiskVeryHigh
	default:
		return analysis.RiskMedium
	}
}

// canonicalLabel lowercases and joins word separators with underscores, so
// "Very High", "very-high", and "VERY_HIGH" all compare equal.
func canonicalLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, "-", "_")
	label = strings.ReplaceAll(label, " ", "_")
	return label
}

func orEmpty(l StringList) []string {
	if l == nil {
		return []string{}
	}
	return l
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
