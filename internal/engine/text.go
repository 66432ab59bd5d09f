package engine

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var specialCharPattern = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};'"\\|,<>/?]`)

// analyzeText scans the lowercase subject+body text for suspicious keywords,
// urgency language, crude grammar anomalies and special-character abuse
func (e *Engine) analyzeText(text string) (float64, []string) {
	var indicators []string
	var score float64
	h := e.heuristics

	for _, keyword := range h.SuspiciousKeywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			indicators = append(indicators, "suspicious_keyword_"+strings.ReplaceAll(keyword, " ", "_"))
			score += h.KeywordScore
			e.logger.Debug("Found suspicious keyword", zap.String("keyword", keyword))
		}
	}

	// First matching urgency pattern wins; a single email never scores
	// urgency more than once
	for _, pattern := range h.UrgencyPatterns {
		if pattern.MatchString(text) {
			indicators = append(indicators, "urgency_language")
			score += h.UrgencyScore
			e.logger.Debug("Detected urgency language in email")
			break
		}
	}

	var grammarScore float64
	for _, pattern := range h.GrammarPatterns {
		if pattern.MatchString(text) {
			grammarScore += h.GrammarScore
		}
	}
	if grammarScore > 0 {
		indicators = append(indicators, "poor_grammar")
		score += grammarScore
		e.logger.Debug("Detected potential grammar issues")
	}

	specialCharCount := len(specialCharPattern.FindAllString(text, -1))
	if specialCharCount > h.SpecialCharThreshold {
		indicators = append(indicators, "excessive_special_characters")
		score += h.SpecialCharScore
		e.logger.Debug("Detected excessive special characters", zap.Int("count", specialCharCount))
	}

	return score, indicators
}
