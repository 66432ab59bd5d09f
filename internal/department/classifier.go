package department

import (
	"strings"

	"go.uber.org/zap"
)

// Rule maps a department name to a set of local-part patterns separated by
// "|". The first rule whose pattern appears in the recipient address wins.
type Rule struct {
	Name     string
	Patterns string
}

// DefaultRules returns the standard department mapping. The final catch-all
// has an empty pattern and always matches.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "IT Department", Patterns: "it@|tech@|support@"},
		{Name: "Finance", Patterns: "finance@|accounting@|payroll@"},
		{Name: "Human Resources", Patterns: "hr@|recruitment@|people@"},
		{Name: "Executive", Patterns: "ceo@|cfo@|cto@|president@|director@"},
		{Name: "Sales", Patterns: "sales@|marketing@|crm@"},
	}
}

// fallback is used when no rule matches or the recipient is empty
const fallback = "Other"

// Classifier assigns a department to a recipient address
type Classifier struct {
	rules  []Rule
	logger *zap.Logger
}

// NewClassifier creates a classifier from an ordered rule list
func NewClassifier(rules []Rule, logger *zap.Logger) *Classifier {
	return &Classifier{
		rules:  rules,
		logger: logger,
	}
}

// Classify returns the department for a recipient email address
func (c *Classifier) Classify(recipient string) string {
	if recipient == "" {
		return fallback
	}

	recipient = strings.ToLower(recipient)
	for _, rule := range c.rules {
		for _, pattern := range strings.Split(rule.Patterns, "|") {
			if pattern != "" && strings.Contains(recipient, pattern) {
				return rule.Name
			}
		}
	}

	return fallback
}
