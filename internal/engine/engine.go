package engine

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/core"
	"github.com/phishguard/phishguard/internal/registry"
)

// Engine is the threat scoring engine. It runs a fixed set of independent
// heuristic analyzers over a parsed email, sums their sub-scores and
// classifies the dominant threat type.
type Engine struct {
	heuristics *Heuristics
	registry   *registry.Registry
	logger     *zap.Logger
}

// New creates a new threat scoring engine
func New(heuristics *Heuristics, reg *registry.Registry, logger *zap.Logger) *Engine {
	return &Engine{
		heuristics: heuristics,
		registry:   reg,
		logger:     logger,
	}
}

// Analyze inspects an email and produces a risk verdict. It never fails: a
// panic in one analyzer is logged and that analyzer's contribution dropped,
// so a single faulty check cannot suppress the others.
func (e *Engine) Analyze(email *core.Email) *core.Verdict {
	// One snapshot for the whole call so a concurrent registry reload
	// cannot produce a mixed view
	snapshot := e.registry.Snapshot()

	fullText := strings.ToLower(email.Subject + " " + email.BodyPlain)

	var riskScore float64
	var indicators []string

	analyzers := []struct {
		name string
		run  func() (float64, []string)
	}{
		{"text", func() (float64, []string) { return e.analyzeText(fullText) }},
		{"spam", func() (float64, []string) {
			return e.analyzeSpam(fullText, email.Subject, email.To, email.Cc, email.Headers)
		}},
		{"url", func() (float64, []string) {
			return e.analyzeURLs(email.BodyPlain, email.BodyHTML, snapshot)
		}},
		{"sender", func() (float64, []string) { return e.analyzeSender(email.From, snapshot) }},
		{"attachment", func() (float64, []string) { return e.analyzeAttachments(email.Attachments) }},
	}

	for _, analyzer := range analyzers {
		score, found := e.runAnalyzer(analyzer.name, analyzer.run)
		riskScore += score
		indicators = append(indicators, found...)
	}

	if riskScore > 100 {
		riskScore = 100
	}

	verdict := &core.Verdict{
		IsSuspicious: riskScore >= e.heuristics.SuspiciousThreshold,
		RiskScore:    riskScore,
		ThreatType:   e.determineThreatType(indicators),
		Indicators:   indicators,
		AnalyzedAt:   time.Now(),
	}

	e.logger.Info("Email analysis completed",
		zap.Float64("risk_score", verdict.RiskScore),
		zap.String("threat_type", verdict.ThreatType),
		zap.Int("indicator_count", len(verdict.Indicators)))

	return verdict
}

// runAnalyzer invokes a single analyzer, converting a panic into a logged
// zero contribution
func (e *Engine) runAnalyzer(name string, run func() (float64, []string)) (score float64, indicators []string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Analyzer panicked",
				zap.String("analyzer", name),
				zap.String("panic", fmt.Sprint(r)))
			score = 0
			indicators = nil
		}
	}()
	return run()
}
