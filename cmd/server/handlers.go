package main

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
	"github.com/lvonguyen/pulsecheck/internal/analyzer"
	"github.com/lvonguyen/pulsecheck/internal/config"
	"github.com/lvonguyen/pulsecheck/internal/insights"
	"github.com/lvonguyen/pulsecheck/internal/observability"
)

type app struct {
	analyzer  *analyzer.Analyzer
	insights  *insights.Engine
	telemetry *observability.Telemetry
	cfg       *config.Config
}

// assessRequest is the wire shape for a single assessment. The context
// decodes over neutral defaults, so absent fields behave like the
// placeholder values.
type assessRequest struct {
	FeedbackText string                   `json:"feedback_text"`
	Context      analysis.EmployeeContext `json:"employee_context"`
}

// batchRequest keeps entries raw so each one can decode over the default
// context individually, giving per-field defaults in batches too.
type batchRequest struct {
	Entries []json.RawMessage `json:"entries"`
}

type insightsRequest struct {
	Records []analysis.AssessmentRecord `json:"records"`
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": Version,
	})
}

func (a *app) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := a.analyzer.HealthCheck(r.Context()); err != nil {
		if m := a.telemetry.Metrics(); m != nil {
			m.HealthStatus.WithLabelValues("oracle").Set(0)
			m.LastHealthCheck.SetToCurrentTime()
		}
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	if m := a.telemetry.Metrics(); m != nil {
		m.HealthStatus.WithLabelValues("oracle").Set(1)
		m.LastHealthCheck.SetToCurrentTime()
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (a *app) handleAssess(w http.ResponseWriter, r *http.Request) {
	req := assessRequest{Context: analysis.DefaultContext()}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FeedbackText == "" {
		writeError(w, http.StatusBadRequest, "feedback_text is required")
		return
	}

	record := a.analyzer.Assess(r.Context(), analyzer.FeedbackEntry{
		Text:    req.FeedbackText,
		Context: req.Context,
	})
	writeJSON(w, http.StatusOK, record)
}

func (a *app) handleAssessBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Entries) == 0 {
		writeError(w, http.StatusBadRequest, "entries is required")
		return
	}
	// A zero or negative cap means unlimited.
	if max := a.cfg.Scoring.MaxBatchSize; max > 0 && len(req.Entries) > max {
		writeError(w, http.StatusBadRequest, "batch size exceeds limit")
		return
	}

	entries := make([]analyzer.FeedbackEntry, len(req.Entries))
	for i, raw := range req.Entries {
		entry := assessRequest{Context: analysis.DefaultContext()}
		if err := json.Unmarshal(raw, &entry); err != nil {
			writeError(w, http.StatusBadRequest, "invalid batch entry")
			return
		}
		entries[i] = analyzer.FeedbackEntry{Text: entry.FeedbackText, Context: entry.Context}
	}

	records, err := a.analyzer.AssessBatch(r.Context(), entries)
	if err != nil {
		a.telemetry.Logger().Error("batch assessment aborted", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "batch assessment failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

func (a *app) handleInsights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	grouped := a.insights.Aggregate(req.Records, insights.ByDepartment)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"departments": grouped,
		"count":       len(req.Records),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
