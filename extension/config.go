package extension

// Config holds the pricing extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.pricing" or "pricing" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// DisableDefaultAdapters skips registration of the reference pricing
	// and discount adapters; the host registers its own set.
	DisableDefaultAdapters bool `json:"disable_default_adapters" mapstructure:"disable_default_adapters" yaml:"disable_default_adapters"`

	// MongoURI enables the MongoDB store when set. Without it (and
	// without a programmatic store) the in-memory store is used.
	MongoURI string `json:"mongo_uri" mapstructure:"mongo_uri" yaml:"mongo_uri"`

	// MongoDatabase is the database name for the MongoDB store
	// (default: "pricing").
	MongoDatabase string `json:"mongo_database" mapstructure:"mongo_database" yaml:"mongo_database"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MongoDatabase: "pricing",
	}
}
