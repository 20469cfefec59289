package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
)

const defaultAnthropicModel = "claude-sonnet-4-5-20250929"

// AnthropicClassifier classifies feedback with the Anthropic Messages API.
type AnthropicClassifier struct {
	client anthropic.Client
	config Config
	model  string
}

// NewAnthropicClassifier creates an Anthropic-backed classifier. The API key
// is read from the configured env var at construction time.
func NewAnthropicClassifier(cfg Config) (*AnthropicClassifier, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key not found in env var: %s", cfg.APIKeyEnv)
	}

	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	return &AnthropicClassifier{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		config: cfg,
		model:  model,
	}, nil
}

// Name returns the classifier identifier.
func (c *AnthropicClassifier) Name() string {
	return "anthropic"
}

// HealthCheck verifies the classifier is usable. The Messages API has no
// ping endpoint, so this checks only that the key is still present.
func (c *AnthropicClassifier) HealthCheck(ctx context.Context) error {
	if os.Getenv(c.config.APIKeyEnv) == "" {
		return fmt.Errorf("anthropic API key missing from env var: %s", c.config.APIKeyEnv)
	}
	return nil
}

// Classify sends the feedback to the model and normalizes the response. A
// non-nil error means the caller should fall back to a degraded assessment.
func (c *AnthropicClassifier) Classify(ctx context.Context, text string, employee analysis.EmployeeContext) (*analysis.ClassificationResult, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	maxTokens := c.config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(c.model),
			MaxTokens: int64(maxTokens),
			System: []anthropic.TextBlockParam{
				{Text: classifySystemPrompt},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(buildClassifyPrompt(text, employee))),
			},
		})
		if err != nil {
			lastErr = fmt.Errorf("anthropic API error: %w", err)
			continue
		}

		responseText := ""
		for _, block := range message.Content {
			if block.Type == "text" {
				responseText = block.Text
				break
			}
		}
		if responseText == "" {
			lastErr = fmt.Errorf("no text content in anthropic response")
			continue
		}

		var raw rawResult
		if err := json.Unmarshal([]byte(extractJSON(responseText)), &raw); err != nil {
			lastErr = fmt.Errorf("parsing classification response: %w", err)
			continue
		}

		return raw.normalize(), nil
	}

	return nil, lastErr
}

const classifySystemPrompt = `You analyze employee feedback for sentiment and attrition risk.

Respond with JSON only (no markdown):
{
  "sentiment": "very_negative|negative|slightly_negative|neutral|slightly_positive|positive|very_positive",
  "attrition_risk": "very_low|low|medium|high|very_high",
  "key_concerns": ["..."],
  "positive_indicators": ["..."],
  "recommended_actions": ["..."],
  "key_phrases": ["..."],
  "sentiment_scores": {"negative": 0.1, "neutral": 0.2, "positive": 0.7},
  "confidence": 0.85
}`

func buildClassifyPrompt(text string, employee analysis.EmployeeContext) string {
	var b strings.Builder
	b.WriteString("Employee context:\n")
	fmt.Fprintf(&b, "- department: %s\n", employee.Department)
	fmt.Fprintf(&b, "- position: %s\n", employee.Position)
	fmt.Fprintf(&b, "- tenure_months: %d\n", employee.TenureMonths)
	fmt.Fprintf(&b, "- manager_rating: %d\n", employee.ManagerRating)
	fmt.Fprintf(&b, "- performance_rating: %d\n", employee.PerformanceRating)
	b.WriteString("\nFeedback:\n")
	b.WriteString(text)
	return b.String()
}

// extractJSON pulls a JSON document out of a model response that may wrap it
// in prose or a markdown fence. Tried in order: the raw text, a fenced block,
// the outermost brace span.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return text
	}

	if i := strings.Index(text, "```json"); i >= 0 {
		rest := text[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
	}
	if i := strings.Index(text, "```"); i >= 0 {
		rest := text[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
