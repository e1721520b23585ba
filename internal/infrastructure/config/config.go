// Package config provides configuration loading for the fwver application.
// Settings come from an optional YAML file with environment variable
// overrides; every setting has a working default so a bare invocation needs
// no configuration at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	// EnvTagPrefix overrides the version tag prefix.
	EnvTagPrefix = "FWVER_TAG_PREFIX"

	// EnvHashLength overrides the short commit hash width.
	EnvHashLength = "FWVER_HASH_LENGTH"

	// EnvLogLevel is the log level (debug, info, error).
	EnvLogLevel = "LOG_LEVEL"

	// EnvLogAppName is the application name for log context.
	EnvLogAppName = "LOG_APP_NAME"
)

// Default values.
const (
	DefaultConfigFile = "fwver.yaml"
	DefaultTagPrefix  = "v"
	DefaultHashLength = 7
	DefaultLogLevel   = "info"
	DefaultLogAppName = "fwver"
)

// Bounds for the short commit hash width. The upper bound is the full
// SHA-1 hex width; shorter than four characters collides too easily to be
// useful.
const (
	MinHashLength = 4
	MaxHashLength = 40
)

// Configuration errors.
var (
	// ErrConfigNotFound indicates an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigInvalid indicates the config file or an override value could not be parsed.
	ErrConfigInvalid = errors.New("configuration is not valid")

	// ErrInvalidHashLength indicates the hash width is outside the supported range.
	ErrInvalidHashLength = fmt.Errorf("hash length must be between %d and %d", MinHashLength, MaxHashLength)
)

// Config holds all application configuration.
type Config struct {
	// TagPrefix filters which tags are considered version tags and is
	// stripped before parsing. Empty selects the default.
	TagPrefix string `yaml:"tag_prefix"`

	// HashLength is the width of the short commit hash.
	HashLength int `yaml:"hash_length"`

	// LogLevel is the logging level (debug, info, error).
	LogLevel string `yaml:"log_level"`

	// LogAppName is the application name for log context.
	LogAppName string `yaml:"log_app_name"`
}

// Load loads configuration from the default file location. A missing
// default file is fine; environment overrides and defaults still apply.
func Load() (*Config, error) {
	return load(DefaultConfigFile, false)
}

// LoadFromFile loads configuration from an explicitly requested path.
// Unlike the default location, the file must exist.
// Returns ErrConfigNotFound when it does not.
func LoadFromFile(path string) (*Config, error) {
	return load(path, true)
}

// load reads the file when present, then layers environment overrides and
// defaults on top, and validates the result. Precedence: environment over
// file over defaults.
func load(path string, required bool) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if uerr := yaml.Unmarshal(data, cfg); uerr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConfigInvalid, path, uerr)
		}
	case os.IsNotExist(err) && !required:
		// The default file is optional.
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides layers environment values over whatever the file set.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvTagPrefix); v != "" {
		cfg.TagPrefix = v
	}
	if v := os.Getenv(EnvHashLength); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrConfigInvalid, EnvHashLength, v)
		}
		cfg.HashLength = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogAppName); v != "" {
		cfg.LogAppName = v
	}
	return nil
}

// applyDefaults fills any setting still unset.
func applyDefaults(cfg *Config) {
	if cfg.TagPrefix == "" {
		cfg.TagPrefix = DefaultTagPrefix
	}
	if cfg.HashLength == 0 {
		cfg.HashLength = DefaultHashLength
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogAppName == "" {
		cfg.LogAppName = DefaultLogAppName
	}
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	if c.HashLength < MinHashLength || c.HashLength > MaxHashLength {
		return fmt.Errorf("%w, got %d", ErrInvalidHashLength, c.HashLength)
	}
	return nil
}

// ExportLogEnvironment propagates the configured log settings to the
// environment the shared logger factory reads. Values already present in
// the environment win, preserving the precedence order: flags, then
// environment, then file.
func (c *Config) ExportLogEnvironment() {
	if os.Getenv(EnvLogLevel) == "" {
		os.Setenv(EnvLogLevel, c.LogLevel)
	}
	if os.Getenv(EnvLogAppName) == "" {
		os.Setenv(EnvLogAppName, c.LogAppName)
	}
}
