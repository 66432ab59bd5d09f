package engine

import (
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

var repeatedPunctuationPattern = regexp.MustCompile(`[!?]{3,}`)

// analyzeSpam scans for bulk/marketing signals: keyword density, shouting
// subjects, bulk headers, recipient fan-out and hidden-HTML tricks
func (e *Engine) analyzeSpam(fullText, subject, recipients, cc string, headers map[string]string) (float64, []string) {
	var indicators []string
	var score float64
	h := e.heuristics

	// Spam keywords are counted rather than individually flagged; the
	// category score is capped so keyword-dense marketing text cannot run
	// away with the verdict
	spamKeywordCount := 0
	for _, keyword := range h.SpamKeywords {
		if strings.Contains(fullText, strings.ToLower(keyword)) {
			spamKeywordCount++
			if spamKeywordCount == 1 {
				indicators = append(indicators, "spam_keywords_detected")
			}
		}
	}
	if spamKeywordCount > 0 {
		baseScore := float64(spamKeywordCount) * h.SpamKeywordScore
		if baseScore > h.SpamKeywordCap {
			baseScore = h.SpamKeywordCap
		}
		score += baseScore
		e.logger.Debug("Detected spam keywords", zap.Int("count", spamKeywordCount))
	}

	if isAllCaps(subject) && len(subject) > h.AllCapsMinLength {
		indicators = append(indicators, "subject_all_caps")
		score += h.AllCapsScore
		e.logger.Debug("Subject is all uppercase")
	}

	if repeatedPunctuationPattern.MatchString(subject) {
		indicators = append(indicators, "excessive_punctuation")
		score += h.PunctuationScore
		e.logger.Debug("Subject has excessive punctuation")
	}

	if strings.Contains(strings.ToLower(headers["Precedence"]), "bulk") ||
		strings.Contains(fullText, "bulk") {
		indicators = append(indicators, "bulk_email")
		score += h.BulkScore
		e.logger.Debug("Email marked as bulk")
	}

	totalRecipients := countAddresses(recipients) + countAddresses(cc)
	if totalRecipients > h.MassMailThreshold {
		indicators = append(indicators, "mass_mailing")
		score += h.MassMailScore
		e.logger.Debug("Mass mailing detected", zap.Int("recipients", totalRecipients))
	}

	if strings.Contains(fullText, `<font color="#ffffff"`) ||
		strings.Contains(fullText, `<div style="display:none"`) {
		indicators = append(indicators, "hidden_text")
		score += h.HiddenTextScore
		e.logger.Debug("Hidden text detected in HTML")
	}

	// First matching subject pattern wins, same policy as urgency language
	subjectLower := strings.ToLower(subject)
	for _, pattern := range h.SpammySubjectPatterns {
		if pattern.MatchString(subjectLower) {
			indicators = append(indicators, "spammy_subject")
			score += h.SpammySubjectScore
			e.logger.Debug("Spammy subject pattern detected", zap.String("pattern", pattern.String()))
			break
		}
	}

	return score, indicators
}

// isAllCaps reports whether the string contains at least one letter and no
// lowercase letters
func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// countAddresses counts comma-separated entries in a recipient header value
func countAddresses(value string) int {
	if value == "" {
		return 0
	}
	return len(strings.Split(value, ","))
}
