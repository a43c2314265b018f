package extension

import (
	pricing "github.com/unchainedshop/unchained-sub022"
	"github.com/unchainedshop/unchained-sub022/store"
)

// Option configures the pricing Forge extension.
type Option func(*Extension)

// WithStore sets the store for the pricing engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithEngineOption passes a pricing.Option through to the underlying
// engine.
func WithEngineOption(opt pricing.Option) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, opt)
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithDisableDefaultAdapters skips the reference adapter set.
func WithDisableDefaultAdapters() Option {
	return func(e *Extension) { e.config.DisableDefaultAdapters = true }
}

// WithMongo enables the MongoDB store.
func WithMongo(uri, database string) Option {
	return func(e *Extension) {
		e.config.MongoURI = uri
		e.config.MongoDatabase = database
	}
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
