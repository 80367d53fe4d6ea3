package config

import (
	"github.com/knadh/koanf/v2"
)

// Config is the root configuration of sqlbricks.
type Config struct {
	Dialect DialectConfig `koanf:"dialect" json:"dialect" yaml:"dialect" mapstructure:"dialect"`
	Log     LogConfig     `koanf:"log" json:"log" yaml:"log" mapstructure:"log"`
	Compile CompileConfig `koanf:"compile" json:"compile" yaml:"compile" mapstructure:"compile"`

	// k keeps the loaded sources for raw key access.
	k *koanf.Koanf
}

// DialectConfig selects the SQL grammar.
type DialectConfig struct {
	Driver string `koanf:"driver" json:"driver" yaml:"driver" mapstructure:"driver" validate:"required,oneof=mysql postgres sqlite mssql"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level  string `koanf:"level" json:"level" yaml:"level" mapstructure:"level" validate:"required,oneof=trace debug info warn error fatal panic"`
	Pretty bool   `koanf:"pretty" json:"pretty" yaml:"pretty" mapstructure:"pretty"`
}

// CompileConfig configures compilation tracing.
type CompileConfig struct {
	// Trace emits one debug event per rendered clause plus a summary event.
	Trace bool `koanf:"trace" json:"trace" yaml:"trace" mapstructure:"trace"`
	// LogBindings adds masked bindings and the interpolated statement to the summary.
	LogBindings bool `koanf:"logbindings" json:"logbindings" yaml:"logbindings" mapstructure:"logbindings"`
	// MaxLength truncates logged SQL and values; 0 disables truncation.
	MaxLength int `koanf:"maxlength" json:"maxlength" yaml:"maxlength" mapstructure:"maxlength" validate:"gte=0"`
}

// String returns the raw value of key from the loaded sources, or "" when the
// configuration was not produced by a loader.
func (c *Config) String(key string) string {
	if c.k == nil {
		return ""
	}
	return c.k.String(key)
}
