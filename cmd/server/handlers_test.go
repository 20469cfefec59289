package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
	"github.com/lvonguyen/pulsecheck/internal/analyzer"
	"github.com/lvonguyen/pulsecheck/internal/config"
	"github.com/lvonguyen/pulsecheck/internal/insights"
	"github.com/lvonguyen/pulsecheck/internal/observability"
	"github.com/lvonguyen/pulsecheck/internal/oracle"
)

func newTestApp(t *testing.T) *app {
	t.Helper()

	telemetry, err := observability.New(observability.Config{
		ServiceName: "pulsecheck-test",
		LogLevel:    "error",
	})
	if err != nil {
		t.Fatalf("telemetry init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	return &app{
		analyzer:  analyzer.New(oracle.NewLexiconClassifier(), telemetry.Logger()),
		insights:  insights.NewEngine(),
		telemetry: telemetry,
		cfg:       cfg,
	}
}

// TestHandleAssess verifies a full single-assessment round trip and that
// absent context fields take the placeholder defaults.
func TestHandleAssess(t *testing.T) {
	a := newTestApp(t)

	body := `{"feedback_text": "I am overworked and exhausted, thinking about looking elsewhere."}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assess", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	a.handleAssess(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var record analysis.AssessmentRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if record.Context.Department != analysis.UnknownValue {
		t.Errorf("expected default department, got %q", record.Context.Department)
	}
	if record.Context.TenureMonths != 12 {
		t.Errorf("expected default tenure 12, got %d", record.Context.TenureMonths)
	}
	if record.Assessment.RiskScore < 0 || record.Assessment.RiskScore > 1 {
		t.Errorf("risk score out of range: %v", record.Assessment.RiskScore)
	}
	if record.Assessment.RiskLevel == "" {
		t.Error("expected a risk level")
	}
}

// TestHandleAssess_Validation covers the rejection paths.
func TestHandleAssess_Validation(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"missing text", `{"employee_context": {"department": "Sales"}}`},
		{"malformed json", `{"feedback_text": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/assess", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			a.handleAssess(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

// TestHandleAssessBatch verifies order-preserving batch output and the size
// cap.
func TestHandleAssessBatch(t *testing.T) {
	a := newTestApp(t)

	body := `{"entries": [
		{"feedback_text": "everything is great, I love it here", "employee_context": {"subject_id": "A"}},
		{"feedback_text": "toxic culture and I plan to quit", "employee_context": {"subject_id": "B", "tenure_months": 2}}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assess/batch", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	a.handleAssessBatch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Records []analysis.AssessmentRecord `json:"records"`
		Count   int                         `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Count != 2 || len(resp.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", resp.Count)
	}
	if resp.Records[0].Context.SubjectID != "A" || resp.Records[1].Context.SubjectID != "B" {
		t.Error("batch output order does not match input")
	}
	if resp.Records[1].Assessment.RiskScore <= resp.Records[0].Assessment.RiskScore {
		t.Errorf("quit signal should outrank praise: %v vs %v",
			resp.Records[1].Assessment.RiskScore, resp.Records[0].Assessment.RiskScore)
	}
	// Partial context still gets field defaults.
	if resp.Records[1].Context.ManagerRating != 3 {
		t.Errorf("expected default manager rating 3, got %d", resp.Records[1].Context.ManagerRating)
	}
}

// TestHandleAssessBatch_CapEnforced verifies oversized batches are rejected.
func TestHandleAssessBatch_CapEnforced(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Scoring.MaxBatchSize = 2

	body := `{"entries": [{"feedback_text": "a"}, {"feedback_text": "b"}, {"feedback_text": "c"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assess/batch", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	a.handleAssessBatch(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

// TestHandleAssessBatch_ZeroCapUnlimited verifies a zero cap disables the
// size check instead of rejecting every batch.
func TestHandleAssessBatch_ZeroCapUnlimited(t *testing.T) {
	a := newTestApp(t)
	a.cfg.Scoring.MaxBatchSize = 0

	body := `{"entries": [{"feedback_text": "a"}, {"feedback_text": "b"}, {"feedback_text": "c"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assess/batch", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	a.handleAssessBatch(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

// TestHandleInsights verifies grouped aggregation over posted records.
func TestHandleInsights(t *testing.T) {
	a := newTestApp(t)

	records := []analysis.AssessmentRecord{
		{
			Context:   analysis.EmployeeContext{SubjectID: "E1", Department: "Engineering"},
			Sentiment: analysis.SentimentNegative,
			Assessment: analysis.RiskAssessment{
				RiskScore: 0.8, RiskLevel: analysis.RiskHigh, ConfidenceScore: 0.6,
				KeyConcerns: []string{"workload"},
			},
		},
		{
			Context:   analysis.EmployeeContext{SubjectID: "S1", Department: "Sales"},
			Sentiment: analysis.SentimentPositive,
			Assessment: analysis.RiskAssessment{
				RiskScore: 0.2, RiskLevel: analysis.RiskLow, ConfidenceScore: 0.8,
			},
		},
	}
	payload, _ := json.Marshal(map[string]interface{}{"records": records})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/insights", bytes.NewBuffer(payload))
	rec := httptest.NewRecorder()

	a.handleInsights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Departments map[string]insights.DepartmentInsight `json:"departments"`
		Count       int                                   `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Count != 2 || len(resp.Departments) != 2 {
		t.Fatalf("expected 2 departments, got %+v", resp)
	}
	eng := resp.Departments["Engineering"]
	if eng.TotalFeedback != 1 || len(eng.HighRiskSubjects) != 1 {
		t.Errorf("unexpected engineering insight: %+v", eng)
	}
}

// TestHandleHealth verifies the liveness endpoint shape.
func TestHandleHealth(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	a.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("unexpected status %q", resp["status"])
	}
}

// TestHandleReady verifies readiness against the lexicon backend, which is
// always healthy.
func TestHandleReady(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	a.handleReady(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
