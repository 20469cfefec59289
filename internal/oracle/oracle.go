// Package oracle provides sentiment classification backends. A backend takes
// raw feedback text plus employee context and returns a normalized
// ClassificationResult; the scoring engine never talks to a backend directly.
package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
)

// Classifier is the interface for classification backends.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, text string, employee analysis.EmployeeContext) (*analysis.ClassificationResult, error)
	HealthCheck(ctx context.Context) error
}

// Config holds common classifier configuration. Secrets are referenced by
// environment variable name, never stored inline.
type Config struct {
	Provider   string        `yaml:"provider"`
	Model      string        `yaml:"model"`
	APIKeyEnv  string        `yaml:"api_key_env"`
	Timeout    time.Duration `yaml:"timeout"`
	RetryCount int           `yaml:"retry_count"`
	MaxTokens  int           `yaml:"max_tokens"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   "lexicon",
		Model:      defaultAnthropicModel,
		APIKeyEnv:  "ANTHROPIC_API_KEY",
		Timeout:    30 * time.Second,
		RetryCount: 2,
		MaxTokens:  1024,
	}
}

// New creates the classifier named by the config.
func New(cfg Config) (Classifier, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicClassifier(cfg)
	case "lexicon", "":
		return NewLexiconClassifier(), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider: %s", cfg.Provider)
	}
}
