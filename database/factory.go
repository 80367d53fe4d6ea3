package database

import (
	"fmt"

	"github.com/gaborage/sqlbricks/config"
	"github.com/gaborage/sqlbricks/database/grammar"
	"github.com/gaborage/sqlbricks/database/internal/builder"
	"github.com/gaborage/sqlbricks/database/internal/compiler"
	"github.com/gaborage/sqlbricks/logger"
)

// Factory creates query builders that share one compiler, and with it the
// grammar, logger and telemetry instruments. It is safe for concurrent use;
// the builders it returns are not.
type Factory struct {
	compiler *compiler.Compiler
}

// NewFactory creates a Factory for driver. An unknown driver yields an error
// matching grammar.ErrDriverNotSupported.
func NewFactory(driver any, opts ...Option) (*Factory, error) {
	g, err := grammar.Create(driver)
	if err != nil {
		return nil, err
	}
	return &Factory{compiler: compiler.New(g, opts...)}, nil
}

// NewFactoryFromConfig creates a Factory from the dialect and compile sections
// of cfg. A nil log is replaced by a zerolog logger built from cfg.Log.
// Explicit opts are applied after the configured ones.
func NewFactoryFromConfig(cfg *config.Config, log logger.Logger, opts ...Option) (*Factory, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database: nil config")
	}
	if log == nil {
		log = logger.New(cfg.Log.Level, cfg.Log.Pretty)
	}

	configured := []Option{
		WithLogger(log),
		WithTrace(cfg.Compile.Trace),
		WithLogBindings(cfg.Compile.LogBindings),
		WithMaxQueryLength(cfg.Compile.MaxLength),
	}
	return NewFactory(cfg.Dialect.Driver, append(configured, opts...)...)
}

// Query returns a new, empty builder.
func (f *Factory) Query() *QueryBuilder {
	return builder.NewWithCompiler(f.compiler)
}

// Dialect returns the driver name of the factory's grammar.
func (f *Factory) Dialect() string {
	return f.compiler.Grammar().Name()
}

// ValidateDriver returns nil if driver names a supported dialect.
func ValidateDriver(driver string) error {
	_, err := grammar.Create(driver)
	return err
}

// SupportedDrivers returns the supported driver names.
func SupportedDrivers() []string {
	return grammar.Drivers()
}
