// Package actions maps concern categories and risk levels onto concrete
// engagement actions. It backfills recommendations when the classification
// backend does not supply any, so assessments always carry next steps.
package actions

import (
	"strings"

	"github.com/lvonguyen/pulsecheck/internal/analysis"
)

// Category is a recognized concern category.
type Category string

const (
	CategoryWorkload     Category = "workload"
	CategoryCompensation Category = "compensation"
	CategoryManagement   Category = "management"
	CategoryGrowth       Category = "growth"
	CategoryRecognition  Category = "recognition"
	CategoryCulture      Category = "culture"
)

// categoryOrder fixes the matching order so output is deterministic.
var categoryOrder = []Category{
	CategoryWorkload,
	CategoryCompensation,
	CategoryManagement,
	CategoryGrowth,
	CategoryRecognition,
	CategoryCulture,
}

// Catalog holds the trigger terms and action templates per category, plus a
// baseline action per risk level.
type Catalog struct {
	triggers map[Category][]string
	actions  map[Category][]string
	baseline map[analysis.RiskLevel]string
}

// NewCatalog creates the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		triggers: map[Category][]string{
			CategoryWorkload:     {"workload", "overwork", "hours", "burnout", "exhaust", "work-life"},
			CategoryCompensation: {"pay", "salary", "compensation", "underpaid", "raise", "bonus"},
			CategoryManagement:   {"manager", "management", "leadership", "micromanage", "supervisor"},
			CategoryGrowth:       {"growth", "career", "promotion", "stagnant", "development", "learning"},
			CategoryRecognition:  {"recognition", "appreciated", "unappreciated", "ignored", "invisible", "credit"},
			CategoryCulture:      {"culture", "toxic", "morale", "politics", "environment", "team dynamics"},
		},
		actions: map[Category][]string{
			CategoryWorkload: {
				"Review current workload distribution and redistribute where possible",
				"Discuss realistic deadlines and priorities in the next one-on-one",
			},
			CategoryCompensation: {
				"Schedule a compensation review against current market benchmarks",
				"Clarify the path and timeline to the next salary adjustment",
			},
			CategoryManagement: {
				"Set up a skip-level conversation to hear concerns directly",
				"Agree on a working style with clearer autonomy boundaries",
			},
			CategoryGrowth: {
				"Build an individual development plan with concrete milestones",
				"Identify a stretch project aligned with stated career goals",
			},
			CategoryRecognition: {
				"Acknowledge recent contributions publicly in the next team forum",
				"Establish a regular cadence for feedback and recognition",
			},
			CategoryCulture: {
				"Run a team health check and share the results openly",
				"Address specific interpersonal friction points with those involved",
			},
		},
		baseline: map[analysis.RiskLevel]string{
			analysis.RiskVeryLow:  "Maintain the current engagement cadence",
			analysis.RiskLow:      "Maintain the current engagement cadence",
			analysis.RiskMedium:   "Schedule a one-on-one within the next two weeks",
			analysis.RiskHigh:     "Schedule a retention conversation this week",
			analysis.RiskVeryHigh: "Escalate to HR and hold a retention conversation immediately",
		},
	}
}

// Recommend returns actions for the given concerns and risk level. Matching
// is substring-based against lowered concern text; unmatched concerns
// contribute nothing. The baseline action for the level always comes first.
func (c *Catalog) Recommend(concerns []string, level analysis.RiskLevel) []string {
	out := []string{}
	if base, ok := c.baseline[level]; ok {
		out = append(out, base)
	}

	seen := make(map[Category]bool)
	for _, category := range categoryOrder {
		if seen[category] {
			continue
		}
		for _, concern := range concerns {
			if matchesCategory(strings.ToLower(concern), c.triggers[category]) {
				seen[category] = true
				out = append(out, c.actions[category]...)
				break
			}
		}
	}
	return out
}

// Categorize maps free-text concerns onto recognized categories, preserving
// the fixed category order and dropping unmatched input.
func (c *Catalog) Categorize(concerns []string) []Category {
	out := []Category{}
	for _, category := range categoryOrder {
		for _, concern := range concerns {
			if matchesCategory(strings.ToLower(concern), c.triggers[category]) {
				out = append(out, category)
				break
			}
		}
	}
	return out
}

func matchesCategory(concern string, triggers []string) bool {
	for _, trigger := range triggers {
		if strings.Contains(concern, trigger) {
			return true
		}
	}
	return false
}
