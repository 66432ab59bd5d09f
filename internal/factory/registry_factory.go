package factory

import (
	"os"

	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/registry"
	"go.uber.org/zap"
)

// RegistryFactory creates the known-domain registry from configuration
type RegistryFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewRegistryFactory creates a new registry factory
func NewRegistryFactory(cfg *config.Config, logger *zap.Logger) *RegistryFactory {
	return &RegistryFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRegistry loads the known-domain lists. A missing file yields the
// built-in defaults; an unreadable one degrades to an empty registry so
// scoring still runs, just without typosquat detection.
func (f *RegistryFactory) CreateRegistry() *registry.Registry {
	path := f.cfg.GetString("registry.path")
	if path == "" {
		return registry.New(registry.DefaultSnapshot())
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f.logger.Info("Domain file not found, using built-in domain lists",
			zap.String("path", path))
		return registry.New(registry.DefaultSnapshot())
	}

	snapshot, err := registry.LoadFile(path)
	if err != nil {
		f.logger.Error("Failed to load domain file, scoring with empty domain lists",
			zap.String("path", path), zap.Error(err))
		return registry.New(registry.EmptySnapshot())
	}

	f.logger.Info("Loaded known-domain registry",
		zap.String("path", path),
		zap.Int("trusted", len(snapshot.Trusted())),
		zap.Int("malicious", len(snapshot.Malicious())))
	return registry.New(snapshot)
}
