package engine

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/registry"
)

var emailAddressPattern = regexp.MustCompile(`[\w.\-]+@[\w.\-]+`)

// analyzeSender validates the envelope sender, checks its domain against the
// known-malicious set and looks for brand names in the display name that the
// actual domain does not back up
func (e *Engine) analyzeSender(sender string, snapshot *registry.Snapshot) (float64, []string) {
	var indicators []string
	var score float64
	h := e.heuristics

	address := emailAddressPattern.FindString(sender)
	if address == "" {
		// Terminal branch: without an address there is nothing further
		// to check
		indicators = append(indicators, "invalid_sender_format")
		score += h.InvalidSenderScore
		e.logger.Debug("Invalid sender format", zap.String("sender", sender))
		return score, indicators
	}

	address = strings.ToLower(address)
	domain := address[strings.LastIndex(address, "@")+1:]

	if snapshot.IsMalicious(domain) {
		indicators = append(indicators, "suspicious_sender_domain")
		score += h.SenderDomainScore
		e.logger.Debug("Detected suspicious sender domain", zap.String("domain", domain))
	}

	var displayName string
	if idx := strings.Index(sender, "<"); idx > 0 {
		displayName = strings.ToLower(strings.TrimSpace(sender[:idx]))
	}

	if displayName != "" {
		for _, brand := range h.BrandTokens {
			if strings.Contains(displayName, brand) && !strings.Contains(domain, brand) {
				indicators = append(indicators, "display_name_spoofing", "brand_impersonation")
				score += h.BrandImpersonationScore
				e.logger.Debug("Detected display name spoofing",
					zap.String("display_name", displayName),
					zap.String("domain", domain))
				break
			}
		}
	}

	return score, indicators
}
