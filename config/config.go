package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultFile is the optional YAML file read by Load.
	DefaultFile = "sqlbricks.yaml"
	// EnvPrefix prefixes environment overrides, e.g. SQLBRICKS_DIALECT_DRIVER.
	EnvPrefix = "SQLBRICKS_"

	defaultMaxQueryLength = 1000
)

// Load loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. sqlbricks.yaml in the working directory, if present
// 3. Default values (lowest priority)
func Load() (*Config, error) {
	return LoadFile(DefaultFile)
}

// LoadFile is Load with an explicit YAML path. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := loadEnv(k); err != nil {
		return nil, err
	}

	return finalize(k)
}

// LoadFromBytes loads YAML content on top of the defaults. Environment
// variables are not consulted.
func LoadFromBytes(content []byte) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return finalize(k)
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"dialect.driver": "postgres",

		"log.level":  "info",
		"log.pretty": false,

		"compile.trace":       false,
		"compile.logbindings": false,
		"compile.maxlength":   defaultMaxQueryLength,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

// loadEnv maps SQLBRICKS_DIALECT_DRIVER to dialect.driver and so on.
func loadEnv(k *koanf.Koanf) error {
	provider := env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			return strings.ReplaceAll(key, "_", "."), value
		},
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

func finalize(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.k = k

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
