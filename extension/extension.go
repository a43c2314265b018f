// Package extension provides the Forge extension adapter for the pricing
// engine.
//
// It implements the forge.Extension interface to integrate the engine into
// a Forge application with DI registration and lifecycle management.
//
// Configuration can be provided programmatically via Option functions or
// via YAML configuration files under "extensions.pricing" or "pricing"
// keys.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/plugins"
	"github.com/unchainedshop/unchained-sub022/store"
	"github.com/unchainedshop/unchained-sub022/store/memory"
	"github.com/unchainedshop/unchained-sub022/store/mongo"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "pricing"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Pluggable pricing and discount calculation engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the pricing engine as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *pricing.Engine
	store      store.Store
	engineOpts []pricing.Option
}

// New creates a new pricing Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying pricing engine.
// This is nil until Register is called.
func (e *Extension) Engine() *pricing.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine with its store and adapters, and registers it in
// the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	if e.store == nil {
		s, err := e.buildStore()
		if err != nil {
			return err
		}
		e.store = s
	}

	opts := make([]pricing.Option, 0, len(e.engineOpts)+1)
	opts = append(opts, pricing.WithStore(e.store))
	opts = append(opts, e.engineOpts...)

	e.engine = pricing.New(opts...)

	if !e.config.DisableDefaultAdapters {
		plugins.RegisterDefaults(e.engine)
	}

	return vessel.Provide(fapp.Container(), func() (*pricing.Engine, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("pricing: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.store.Migrate(ctx); err != nil {
			return fmt.Errorf("pricing: migrate: %w", err)
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(ctx context.Context) error {
	if e.store != nil {
		if err := e.store.Close(ctx); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("pricing: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildStore constructs the store from the resolved config.
func (e *Extension) buildStore() (store.Store, error) {
	if e.config.MongoURI == "" {
		return memory.New(), nil
	}

	s, err := mongo.Connect(context.Background(), mongo.Config{
		URI:      e.config.MongoURI,
		Database: e.config.MongoDatabase,
	})
	if err != nil {
		return nil, fmt.Errorf("pricing: mongo store: %w", err)
	}

	return s, nil
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("pricing: configuration is required but not found in config files; " +
				"ensure 'extensions.pricing' or 'pricing' key exists in your config")
		}

		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("pricing: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("disable_default_adapters", e.config.DisableDefaultAdapters),
		forge.F("mongo_database", e.config.MongoDatabase),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.pricing" first (namespaced pattern).
	if cm.IsSet("extensions.pricing") {
		if err := cm.Bind("extensions.pricing", &cfg); err == nil {
			e.Logger().Debug("pricing: loaded config from file",
				forge.F("key", "extensions.pricing"),
			)
			return cfg, true
		}
		e.Logger().Warn("pricing: failed to bind extensions.pricing config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "pricing" key.
	if cm.IsSet("pricing") {
		if err := cm.Bind("pricing", &cfg); err == nil {
			e.Logger().Debug("pricing: loaded config from file",
				forge.F("key", "pricing"),
			)
			return cfg, true
		}
		e.Logger().Warn("pricing: failed to bind pricing config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = defaults.MongoDatabase
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	if programmaticConfig.DisableDefaultAdapters {
		yamlConfig.DisableDefaultAdapters = true
	}

	if yamlConfig.MongoURI == "" && programmaticConfig.MongoURI != "" {
		yamlConfig.MongoURI = programmaticConfig.MongoURI
	}
	if yamlConfig.MongoDatabase == "" && programmaticConfig.MongoDatabase != "" {
		yamlConfig.MongoDatabase = programmaticConfig.MongoDatabase
	}

	return e.mergeWithDefaults(yamlConfig)
}
