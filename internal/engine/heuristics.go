package engine

import (
	"regexp"
)

// Heuristics holds every keyword list, pattern list and score weight used by
// the analyzers. Tables are injected at construction time so deployments can
// extend them and tests can run against synthetic tables.
type Heuristics struct {
	// Text analysis
	SuspiciousKeywords   []string
	KeywordScore         float64
	UrgencyPatterns      []*regexp.Regexp
	UrgencyScore         float64
	GrammarPatterns      []*regexp.Regexp
	GrammarScore         float64
	SpecialCharThreshold int
	SpecialCharScore     float64

	// Spam analysis
	SpamKeywords          []string
	SpamKeywordScore      float64
	SpamKeywordCap        float64
	AllCapsMinLength      int
	AllCapsScore          float64
	PunctuationScore      float64
	BulkScore             float64
	MassMailThreshold     int
	MassMailScore         float64
	HiddenTextScore       float64
	SpammySubjectPatterns []*regexp.Regexp
	SpammySubjectScore    float64

	// URL analysis
	SuspiciousTLDs       []string
	SuspiciousTLDScore   float64
	IPAddressScore       float64
	SpoofingMaxDistance  int
	SpoofingScore        float64
	MaliciousDomainScore float64
	RedirectionMarkers   []string
	RedirectionScore     float64
	URLShorteners        []string
	ShortenerScore       float64

	// Sender analysis
	InvalidSenderScore      float64
	SenderDomainScore       float64
	BrandTokens             []string
	BrandImpersonationScore float64

	// Attachment analysis
	ExecutableExtensions     []string
	MaliciousAttachmentScore float64
	DoubleExtensionScore     float64
	ContentMismatchScore     float64

	// Aggregation
	SuspiciousThreshold float64
}

func mustCompileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// DefaultHeuristics returns the standard heuristic tables and weights
func DefaultHeuristics() *Heuristics {
	return &Heuristics{
		SuspiciousKeywords: []string{
			// Urgency
			"urgent", "immediate", "alert", "attention", "important",
			// Action required
			"verify your account", "confirm your identity", "update your information",
			"click here", "click below", "click the link",
			// Security threats
			"suspicious activity", "unauthorized", "security breach",
			"locked", "suspended", "disabled", "limited",
			// Financial incentives
			"prize", "won", "winner", "lottery", "inheritance",
			// Accounts
			"password expired", "account verification", "unusual sign-in",
			// Legal threats
			"legal action", "lawsuit", "court", "police",
			// Generic bait
			"exclusive offer", "one-time opportunity",
		},
		KeywordScore: 10,
		UrgencyPatterns: mustCompileAll([]string{
			`(?i)urgent`, `(?i)immediate`, `(?i)act now`, `(?i)expires`, `(?i)today only`,
			`(?i)24 hours`, `(?i)limited time`, `(?i)deadline`, `(?i)quickly`,
		}),
		UrgencyScore: 15,
		GrammarPatterns: mustCompileAll([]string{
			`(?i)you(?:r|) (has|have) been`, `(?i)kindly do the needful`, `(?i)revert back`,
			`(?i)please\s+(?:to|)\s*contact`, `(?i)we are\s+(?:going to|)\s*proceeding`,
		}),
		GrammarScore:         5,
		SpecialCharThreshold: 20,
		SpecialCharScore:     10,

		SpamKeywords: []string{
			// Common spam terms
			"buy now", "cheap", "discount", "free", "limited time", "offer", "save",
			"deal", "cash", "earn money", "make money", "income", "dollars",
			// Health related
			"weight loss", "diet", "viagra", "cialis", "pharmacy", "prescription",
			// Marketing spam
			"subscribe now", "advertisement", "marketing", "bulk", "opt-in",
			"best price", "best rates", "bonus", "cash back",
			// Phrases
			"no obligation", "no purchase necessary", "satisfaction guaranteed",
			"this is not spam", "direct email", "click now",
			// Unsubscribe patterns
			"click to remove", "opt out", "unsubscribe",
		},
		SpamKeywordScore:  5,
		SpamKeywordCap:    30,
		AllCapsMinLength:  10,
		AllCapsScore:      15,
		PunctuationScore:  10,
		BulkScore:         20,
		MassMailThreshold: 15,
		MassMailScore:     15,
		HiddenTextScore:   25,
		SpammySubjectPatterns: mustCompileAll([]string{
			`^re: *re:`, `fw: *fw:`,
			`\d+% off`, `save \d+%`,
			`free`, `buy now`, `limited time`,
			`dollars|€|\$\d+`, `discount`,
		}),
		SpammySubjectScore: 15,

		SuspiciousTLDs:       []string{".xyz", ".top", ".club", ".work", ".live"},
		SuspiciousTLDScore:   10,
		IPAddressScore:       25,
		SpoofingMaxDistance:  3,
		SpoofingScore:        30,
		MaliciousDomainScore: 40,
		RedirectionMarkers:   []string{"redirect", "url=", "link="},
		RedirectionScore:     15,
		URLShorteners:        []string{"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly", "is.gd"},
		ShortenerScore:       20,

		InvalidSenderScore: 20,
		SenderDomainScore:  30,
		BrandTokens: []string{
			"paypal", "amazon", "google", "microsoft", "apple",
			"facebook", "netflix", "bank", "wellsfargo", "chase",
		},
		BrandImpersonationScore: 40,

		ExecutableExtensions: []string{
			".exe", ".scr", ".bat", ".cmd", ".js", ".jar", ".vbs",
			".ps1", ".msi", ".hta", ".wsf", ".jse", ".pif",
		},
		MaliciousAttachmentScore: 50,
		DoubleExtensionScore:     50,
		ContentMismatchScore:     30,

		SuspiciousThreshold: 40,
	}
}
