package engine

import (
	"strings"
)

// threatMapping associates an indicator key with a threat-type label. The
// table is ordered: when two threat types end up with equal counts, the one
// counted first wins.
type threatMapping struct {
	indicatorKey string
	threatType   string
}

var threatMappings = []threatMapping{
	{"suspicious_link", "phishing_attempt"},
	{"domain_spoofing", "domain_spoofing"},
	{"display_name_spoofing", "email_spoofing"},
	{"brand_impersonation", "brand_impersonation"},
	{"malicious_attachment_type", "malware_distribution"},
	{"double_extension_attachment", "malware_distribution"},
	{"urgency_language", "social_engineering"},
	{"suspicious_sender_domain", "phishing_attempt"},
	{"known_malicious_domain", "phishing_campaign"},
	// Spam indicators
	{"spam_keywords_detected", "spam_email"},
	{"subject_all_caps", "spam_email"},
	{"excessive_punctuation", "spam_email"},
	{"bulk_email", "spam_email"},
	{"mass_mailing", "spam_email"},
	{"hidden_text", "spam_email"},
	{"spammy_subject", "spam_email"},
}

// defaultThreatType is returned when no indicator matches any mapping key
const defaultThreatType = "suspicious_email"

// determineThreatType picks the dominant threat type from the indicator set.
// Matching is a bidirectional substring test, so one indicator can increment
// several threat-type counters.
func (e *Engine) determineThreatType(indicators []string) string {
	counts := make(map[string]int)
	var firstSeen []string

	for _, indicator := range indicators {
		for _, mapping := range threatMappings {
			if strings.Contains(indicator, mapping.indicatorKey) ||
				strings.Contains(mapping.indicatorKey, indicator) {
				if _, ok := counts[mapping.threatType]; !ok {
					firstSeen = append(firstSeen, mapping.threatType)
				}
				counts[mapping.threatType]++
			}
		}
	}

	if len(firstSeen) == 0 {
		return defaultThreatType
	}

	best := firstSeen[0]
	for _, threatType := range firstSeen[1:] {
		if counts[threatType] > counts[best] {
			best = threatType
		}
	}
	return best
}
