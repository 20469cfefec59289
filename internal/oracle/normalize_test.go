package oracle

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
)

// TestStringList_MixedEntries verifies reduction of the entry shapes models
// actually produce.
func TestStringList_MixedEntries(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain strings", `["workload", "pay"]`, []string{"workload", "pay"}},
		{"object with concern key", `[{"concern": "workload", "severity": "high"}]`, []string{"workload"}},
		{"object with description key", `[{"description": "no growth path"}]`, []string{"no growth path"}},
		{"mixed shapes", `["pay", {"action": "schedule 1:1"}, 42, true]`, []string{"pay", "schedule 1:1", "42", "true"}},
		{"unusable object dropped", `[{"weight": 3}, "kept"]`, []string{"kept"}},
		{"bare string becomes single entry", `"workload"`, []string{"workload"}},
		{"empty strings dropped", `["", "  ", "real"]`, []string{"real"}},
		{"empty array", `[]`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual([]string(got), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestNormalize_LabelVariants verifies case and separator variants collapse
// onto the canonical vocabulary, with neutral and medium as the fallbacks.
func TestNormalize_LabelVariants(t *testing.T) {
	sentiments := []struct {
		in   string
		want analysis.Sentiment
	}{
		{"negative", analysis.SentimentNegative},
		{"Very Negative", analysis.SentimentVeryNegative},
		{"SLIGHTLY-POSITIVE", analysis.SentimentSlightlyPositive},
		{"very_positive", analysis.SentimentVeryPositive},
		{"ecstatic", analysis.SentimentNeutral},
		{"", analysis.SentimentNeutral},
	}
	for _, tt := range sentiments {
		if got := canonicalSentiment(tt.in); got != tt.want {
			t.Errorf("canonicalSentiment(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	risks := []struct {
		in   string
		want analysis.RiskLevel
	}{
		{"high", analysis.RiskHigh},
		{"Very High", analysis.RiskVeryHigh},
		{"VERY-LOW", analysis.RiskVeryLow},
		{"catastrophic", analysis.RiskMedium},
		{"", analysis.RiskMedium},
	}
	for _, tt := range risks {
		if got := canonicalRisk(tt.in); got != tt.want {
			t.Errorf("canonicalRisk(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

// TestNormalize_FullResult verifies immediate actions merge into recommended
// actions and sentiment score keys are canonicalized.
func TestNormalize_FullResult(t *testing.T) {
	payload := `{
		"sentiment": "Negative",
		"attrition_risk": "high",
		"key_concerns": [{"concern": "workload"}],
		"recommended_actions": ["schedule 1:1"],
		"immediate_actions": ["review compensation"],
		"sentiment_scores": {"Negative": 0.7, "neutral": 0.2, "positive": 1.4},
		"confidence": 1.3
	}`

	var raw rawResult
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	res := raw.normalize()

	if res.Sentiment != analysis.SentimentNegative {
		t.Errorf("expected negative sentiment, got %s", res.Sentiment)
	}
	if res.AttritionRisk != analysis.RiskHigh {
		t.Errorf("expected high risk, got %s", res.AttritionRisk)
	}

	wantActions := []string{"schedule 1:1", "review compensation"}
	if !reflect.DeepEqual(res.RecommendedActions, wantActions) {
		t.Errorf("expected actions %v, got %v", wantActions, res.RecommendedActions)
	}

	if res.SentimentScores[analysis.SentimentNegative] != 0.7 {
		t.Errorf("score key not canonicalized: %v", res.SentimentScores)
	}
	if res.SentimentScores[analysis.SentimentPositive] != 1.0 {
		t.Errorf("out-of-range score should clamp to 1.0, got %v", res.SentimentScores[analysis.SentimentPositive])
	}
	if res.OracleConfidence != 1.0 {
		t.Errorf("out-of-range confidence should clamp to 1.0, got %v", res.OracleConfidence)
	}

	if res.PositiveIndicators == nil || res.KeyPhrases == nil {
		t.Error("absent lists must normalize to empty, not nil")
	}
}

// TestExtractJSON covers the fallback chain for wrapped model output.
func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"raw object", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "Here you go:\n```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"prose wrapped", `The result is {"a": 1} as requested.`, `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
