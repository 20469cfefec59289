package oracle

import (
	"context"
	"reflect"
	"testing"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
)

// TestLexicon_NegativeFeedback verifies clearly negative text with multiple
// concern categories lands at elevated risk.
func TestLexicon_NegativeFeedback(t *testing.T) {
	c := NewLexiconClassifier()

	res, err := c.Classify(context.Background(), "I am overworked and underpaid, completely exhausted and my manager ignores everything I raise.", analysis.EmployeeContext{})
	if err != nil {
		t.Fatalf("lexicon classify returned error: %v", err)
	}

	switch res.Sentiment {
	case analysis.SentimentVeryNegative, analysis.SentimentNegative:
	default:
		t.Errorf("expected negative-side sentiment, got %s", res.Sentiment)
	}
	if res.AttritionRisk != analysis.RiskHigh {
		t.Errorf("expected high risk, got %s", res.AttritionRisk)
	}

	wantConcerns := []string{"workload", "compensation", "management"}
	if !reflect.DeepEqual(res.KeyConcerns, wantConcerns) {
		t.Errorf("expected concerns %v, got %v", wantConcerns, res.KeyConcerns)
	}
}

// TestLexicon_QuitSignalDominates verifies explicit quit language forces the
// highest risk opinion regardless of tone.
func TestLexicon_QuitSignalDominates(t *testing.T) {
	c := NewLexiconClassifier()

	res, err := c.Classify(context.Background(), "I love my team and enjoy the work, but I have decided to resign next month.", analysis.EmployeeContext{})
	if err != nil {
		t.Fatalf("lexicon classify returned error: %v", err)
	}
	if res.AttritionRisk != analysis.RiskVeryHigh {
		t.Errorf("expected very_high risk on quit signal, got %s", res.AttritionRisk)
	}
}

// TestLexicon_PositiveFeedback verifies positive text stays at low risk with
// no concerns.
func TestLexicon_PositiveFeedback(t *testing.T) {
	c := NewLexiconClassifier()

	res, err := c.Classify(context.Background(), "I love working here, the team is great and I feel appreciated and motivated every day.", analysis.EmployeeContext{})
	if err != nil {
		t.Fatalf("lexicon classify returned error: %v", err)
	}

	switch res.Sentiment {
	case analysis.SentimentSlightlyPositive, analysis.SentimentPositive, analysis.SentimentVeryPositive:
	default:
		t.Errorf("expected positive-side sentiment, got %s", res.Sentiment)
	}
	if res.AttritionRisk != analysis.RiskLow {
		t.Errorf("expected low risk, got %s", res.AttritionRisk)
	}
	if len(res.KeyConcerns) != 0 {
		t.Errorf("expected no concerns, got %v", res.KeyConcerns)
	}
}

// TestLexicon_Deterministic verifies identical text yields identical results
// including concern ordering.
func TestLexicon_Deterministic(t *testing.T) {
	c := NewLexiconClassifier()
	text := "Toxic culture, stagnant career, underpaid, and management ignores feedback."

	first, err := c.Classify(context.Background(), text, analysis.EmployeeContext{})
	if err != nil {
		t.Fatalf("lexicon classify returned error: %v", err)
	}
	for i := 0; i < 50; i++ {
		again, err := c.Classify(context.Background(), text, analysis.EmployeeContext{})
		if err != nil {
			t.Fatalf("lexicon classify returned error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed: %+v vs %+v", i, first, again)
		}
	}
}

// TestLexicon_EmptyText verifies the neutral shape for empty input.
func TestLexicon_EmptyText(t *testing.T) {
	c := NewLexiconClassifier()

	res, err := c.Classify(context.Background(), "", analysis.EmployeeContext{})
	if err != nil {
		t.Fatalf("lexicon classify returned error: %v", err)
	}
	if res.Sentiment != analysis.SentimentNeutral {
		t.Errorf("expected neutral sentiment, got %s", res.Sentiment)
	}
	if res.SentimentScores[analysis.SentimentNeutral] != 1.0 {
		t.Errorf("expected neutral-only distribution, got %v", res.SentimentScores)
	}
	if res.KeyConcerns == nil || res.RecommendedActions == nil {
		t.Error("list fields must be non-nil")
	}
}

// TestNewClassifierFactory verifies provider selection and the unknown
// provider error.
func TestNewClassifierFactory(t *testing.T) {
	c, err := New(Config{Provider: "lexicon"})
	if err != nil {
		t.Fatalf("lexicon factory failed: %v", err)
	}
	if c.Name() != "lexicon" {
		t.Errorf("expected lexicon, got %s", c.Name())
	}

	if _, err := New(Config{Provider: "oracle-of-delphi"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
