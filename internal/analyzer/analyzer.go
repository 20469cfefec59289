// Package analyzer orchestrates one assessment: classify the feedback,
// score risk and confidence, map the score to a level, and fill in
// recommended actions. Classification failures degrade the output instead of
// failing it; Assess never returns an error.
package analyzer

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lvonguyen/pulsecheck/internal/actions"
	"github.com/lvonguyen/pulsecheck/internal/analysis"
	"github.com/lvonguyen/pulsecheck/internal/observability"
	"github.com/lvonguyen/pulsecheck/internal/oracle"
)

// FeedbackEntry is one unit of work: the raw text plus its context.
type FeedbackEntry struct {
	Text    string                   `json:"feedback_text"`
	Context analysis.EmployeeContext `json:"employee_context"`
}

// Analyzer ties the classification backend to the scoring engine.
type Analyzer struct {
	classifier   oracle.Classifier
	risk         *analysis.RiskScorer
	confidence   *analysis.ConfidenceScorer
	levels       analysis.LevelTable
	catalog      *actions.Catalog
	logger       *zap.Logger
	metrics      *observability.Metrics
	batchWorkers int
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithLevels overrides the level table.
func WithLevels(levels analysis.LevelTable) Option {
	return func(a *Analyzer) { a.levels = levels }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// WithBatchWorkers sets the batch concurrency limit.
func WithBatchWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.batchWorkers = n
		}
	}
}

// New creates an analyzer with the three-level table and default scorers.
func New(classifier oracle.Classifier, logger *zap.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		classifier:   classifier,
		risk:         analysis.NewRiskScorer(),
		confidence:   analysis.NewConfidenceScorer(),
		levels:       analysis.ThreeLevels(),
		catalog:      actions.NewCatalog(),
		logger:       logger,
		batchWorkers: 8,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess produces a complete record for one piece of feedback. It never
// fails: a classifier error yields a degraded record with fixed neutral
// scores.
func (a *Analyzer) Assess(ctx context.Context, entry FeedbackEntry) analysis.AssessmentRecord {
	start := time.Now()
	res, err := a.classifier.Classify(ctx, entry.Text, entry.Context)
	a.observeOracle(time.Since(start), err)

	var classified analysis.ClassificationResult
	if err != nil {
		a.logger.Warn("classification failed, producing degraded assessment",
			zap.String("provider", a.classifier.Name()),
			zap.String("subject_id", entry.Context.SubjectID),
			zap.Error(err),
		)
		classified = analysis.ClassificationResult{
			Sentiment: analysis.SentimentNeutral,
			Error:     err.Error(),
		}
	} else {
		classified = *res
	}

	riskScore, degraded := a.risk.Score(classified, entry.Context)
	confidence, confDegraded := a.confidence.Score(entry.Text, classified, entry.Context)
	degraded = degraded || confDegraded
	level := a.levels.Classify(riskScore)

	assessment := analysis.RiskAssessment{
		RiskScore:          riskScore,
		RiskLevel:          level,
		ConfidenceScore:    confidence,
		KeyConcerns:        orEmpty(classified.KeyConcerns),
		PositiveIndicators: orEmpty(classified.PositiveIndicators),
		RecommendedActions: orEmpty(classified.RecommendedActions),
		Degraded:           degraded,
	}

	// The backend may not suggest anything; the catalog always can.
	if len(assessment.RecommendedActions) == 0 && !degraded {
		assessment.RecommendedActions = a.catalog.Recommend(assessment.KeyConcerns, level)
	}

	a.observeAssessment(assessment)

	return analysis.AssessmentRecord{
		Context:    entry.Context,
		Sentiment:  classified.Sentiment,
		Assessment: assessment,
	}
}

// AssessBatch runs entries concurrently with a bounded worker count,
// preserving input order. Per-entry failures are already absorbed by Assess,
// so the only error out of here is context cancellation.
func (a *Analyzer) AssessBatch(ctx context.Context, entries []FeedbackEntry) ([]analysis.AssessmentRecord, error) {
	if a.metrics != nil {
		a.metrics.BatchSize.Observe(float64(len(entries)))
	}

	records := make([]analysis.AssessmentRecord, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.batchWorkers)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i] = a.Assess(ctx, entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// HealthCheck reports whether the classification backend is usable.
func (a *Analyzer) HealthCheck(ctx context.Context) error {
	return a.classifier.HealthCheck(ctx)
}

func (a *Analyzer) observeOracle(elapsed time.Duration, err error) {
	if a.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	a.metrics.OracleRequests.WithLabelValues(a.classifier.Name(), status).Inc()
	a.metrics.OracleDuration.WithLabelValues(a.classifier.Name()).Observe(elapsed.Seconds())
}

func (a *Analyzer) observeAssessment(assessment analysis.RiskAssessment) {
	if a.metrics == nil {
		return
	}
	a.metrics.AssessmentsTotal.WithLabelValues(string(assessment.RiskLevel)).Inc()
	a.metrics.RiskScore.Observe(assessment.RiskScore)
	if assessment.Degraded {
		a.metrics.DegradedAssessments.Inc()
	}
}

func orEmpty(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}
