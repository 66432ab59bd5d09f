package factory

import (
	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/engine"
	"github.com/phishguard/phishguard/internal/registry"
	"go.uber.org/zap"
)

// EngineFactory creates the threat scoring engine from configuration
type EngineFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewEngineFactory creates a new engine factory
func NewEngineFactory(cfg *config.Config, logger *zap.Logger) *EngineFactory {
	return &EngineFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateEngine builds an engine with the default heuristic tables, applying
// the tunable thresholds from configuration
func (f *EngineFactory) CreateEngine(reg *registry.Registry) *engine.Engine {
	heuristics := engine.DefaultHeuristics()
	heuristics.SuspiciousThreshold = f.cfg.GetFloat64("engine.suspicious_threshold")
	heuristics.SpecialCharThreshold = f.cfg.GetInt("engine.special_char_threshold")
	heuristics.MassMailThreshold = f.cfg.GetInt("engine.mass_mail_threshold")

	return engine.New(heuristics, reg, f.logger)
}
