package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/core"
	"github.com/phishguard/phishguard/internal/department"
	"github.com/phishguard/phishguard/internal/engine"
	"github.com/phishguard/phishguard/internal/factory"
	"github.com/phishguard/phishguard/internal/logging"
	"github.com/phishguard/phishguard/internal/registry"
	"github.com/phishguard/phishguard/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewRegistryFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewEngineFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}

	// Register known-domain registry
	if err := container.Provide(func(f *factory.RegistryFactory) *registry.Registry {
		return f.CreateRegistry()
	}); err != nil {
		return nil, err
	}

	// Register scoring engine
	if err := container.Provide(func(f *factory.EngineFactory, reg *registry.Registry) *engine.Engine {
		return f.CreateEngine(reg)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(e *engine.Engine) core.ThreatAnalyzer {
		return e
	}); err != nil {
		return nil, err
	}

	// Register threat store
	if err := container.Provide(func(f *factory.StoreFactory) (core.ThreatStore, error) {
		return f.CreateThreatStore()
	}); err != nil {
		return nil, err
	}

	// Register department classifier
	if err := container.Provide(func(logger *zap.Logger) *department.Classifier {
		return department.NewClassifier(department.DefaultRules(), logger)
	}); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// No OCR collaborator is wired in by default; the service skips the
	// image scan step when the scanner is nil
	if err := container.Provide(func() core.ImageScanner {
		return nil
	}); err != nil {
		return nil, err
	}

	// Register threat detection service
	if err := container.Provide(core.NewThreatDetectionService); err != nil {
		return nil, err
	}

	return container, nil
}
