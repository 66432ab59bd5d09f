package engine

import (
	neturl "net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/registry"
)

var (
	plainURLPattern = regexp.MustCompile(`https?://[^\s<>"]+|www\.[^\s<>"]+|[^\s<>"]+\.[a-zA-Z]{2,}(?:/[^\s<>"]*)?`)
	hrefPattern     = regexp.MustCompile(`href=["'](https?://[^\s<>"']+|www\.[^\s<>"']+)["']`)
	ipv4Pattern     = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)
)

// analyzeURLs extracts URLs from the plain and HTML bodies and scores each
// against IP-literal, TLD, typosquatting, known-malicious, redirection and
// shortener rules. The rules are independently additive: one URL can
// contribute to several indicators.
func (e *Engine) analyzeURLs(plainText, htmlText string, snapshot *registry.Snapshot) (float64, []string) {
	var indicators []string
	var score float64
	h := e.heuristics

	urls := dedupe(append(
		plainURLPattern.FindAllString(plainText, -1),
		e.extractHrefs(htmlText)...,
	))
	if len(urls) == 0 {
		return score, indicators
	}

	hasMaliciousURL := false

	for _, rawURL := range urls {
		if strings.HasPrefix(rawURL, "www.") {
			rawURL = "http://" + rawURL
		}

		parsed, err := neturl.Parse(rawURL)
		if err != nil {
			e.logger.Warn("Skipping unparseable URL", zap.String("url", rawURL), zap.Error(err))
			continue
		}

		domain := strings.ToLower(parsed.Host)
		domain = strings.TrimPrefix(domain, "www.")

		if ipv4Pattern.MatchString(domain) {
			indicators = append(indicators, "ip_address_url")
			score += h.IPAddressScore
			hasMaliciousURL = true
			e.logger.Debug("Detected IP address URL", zap.String("domain", domain))
		}

		for _, tld := range h.SuspiciousTLDs {
			if strings.HasSuffix(domain, tld) {
				indicators = append(indicators, "suspicious_tld")
				score += h.SuspiciousTLDScore
				e.logger.Debug("Detected suspicious TLD in URL", zap.String("domain", domain))
				break
			}
		}

		// Typosquatting: small but nonzero edit distance to a trusted
		// domain, checked only when the host is not itself trusted
		if !snapshot.IsTrusted(domain) {
			for _, trusted := range snapshot.Trusted() {
				distance := levenshteinDistance(domain, trusted)
				if distance > 0 && distance <= h.SpoofingMaxDistance {
					indicators = append(indicators, "domain_spoofing")
					score += h.SpoofingScore
					hasMaliciousURL = true
					e.logger.Debug("Detected potential typosquatting",
						zap.String("domain", domain),
						zap.String("similar_to", trusted))
					break
				}
			}
		}

		if snapshot.IsMalicious(domain) {
			indicators = append(indicators, "known_malicious_domain")
			score += h.MaliciousDomainScore
			hasMaliciousURL = true
			e.logger.Debug("Detected known malicious domain", zap.String("domain", domain))
		}

		lowerURL := strings.ToLower(rawURL)
		for _, marker := range h.RedirectionMarkers {
			if strings.Contains(lowerURL, marker) {
				indicators = append(indicators, "url_redirection")
				score += h.RedirectionScore
				e.logger.Debug("Detected URL redirection", zap.String("url", rawURL))
				break
			}
		}

		for _, shortener := range h.URLShorteners {
			if strings.Contains(domain, shortener) {
				indicators = append(indicators, "url_shortener")
				score += h.ShortenerScore
				e.logger.Debug("Detected URL shortener", zap.String("domain", domain))
				break
			}
		}
	}

	if hasMaliciousURL {
		indicators = append(indicators, "suspicious_link")
	}

	return score, indicators
}

// extractHrefs pulls link destinations out of the HTML body. Anchor text can
// mask the true destination, so the href attribute is what gets scored. A
// body goquery cannot parse falls back to a regex scan rather than aborting
// URL analysis.
func (e *Engine) extractHrefs(htmlText string) []string {
	if htmlText == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		e.logger.Warn("Failed to parse HTML body, falling back to regex href scan", zap.Error(err))
		return extractHrefsRegex(htmlText)
	}

	var urls []string
	doc.Find("a[href], area[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") ||
			strings.HasPrefix(href, "www.") {
			urls = append(urls, href)
		}
	})
	return urls
}

func extractHrefsRegex(htmlText string) []string {
	var urls []string
	for _, match := range hrefPattern.FindAllStringSubmatch(htmlText, -1) {
		urls = append(urls, match[1])
	}
	return urls
}

// dedupe removes duplicate URLs preserving first-seen order so repeated
// analysis of the same email yields identical indicator sequences
func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
