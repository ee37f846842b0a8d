// Package config holds the ambient settings of the exporter: where the trends
// provider lives, how long to wait for it, and how to log. Region selection and
// the chosen output folder are never stored here between runs; only the
// defaults the form opens with.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

const (
	AppName = "trends-exporter"

	// DefaultConfigFile is the file name looked up inside XDGConfigDir.
	DefaultConfigFile = "config.yaml"

	// EnvPrefix scopes environment overrides, e.g. TRENDS_EXPORTER_PROVIDER_LANGUAGE.
	EnvPrefix = "TRENDS_EXPORTER"

	DefaultEndpoint       = "https://trends.google.com/trending/rss"
	DefaultLanguage       = "en-US"
	DefaultTimeoutSeconds = 30
	DefaultMaxTerms       = 20
	DefaultUserAgent      = "trends-exporter/1.0"
	DefaultConcurrency    = 4
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
)

type Config struct {
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	Export   ExportConfig   `mapstructure:"export" yaml:"export"`
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
}

type ProviderConfig struct {
	Endpoint       string `mapstructure:"endpoint" yaml:"endpoint"`
	Language       string `mapstructure:"language" yaml:"language"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxTerms       int    `mapstructure:"max_terms" yaml:"max_terms"`
	UserAgent      string `mapstructure:"user_agent" yaml:"user_agent"`
}

// Timeout converts TimeoutSeconds to a duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

type ExportConfig struct {
	OutputDir      string   `mapstructure:"output_dir" yaml:"output_dir"`
	DefaultRegions []string `mapstructure:"default_regions" yaml:"default_regions"`
	Concurrency    int      `mapstructure:"concurrency" yaml:"concurrency"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Endpoint:       DefaultEndpoint,
			Language:       DefaultLanguage,
			TimeoutSeconds: DefaultTimeoutSeconds,
			MaxTerms:       DefaultMaxTerms,
			UserAgent:      DefaultUserAgent,
		},
		Export: ExportConfig{
			DefaultRegions: []string{"GR"},
			Concurrency:    DefaultConcurrency,
		},
		Logger: LoggerConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// XDGConfigDir returns the configuration directory, e.g. ~/.config/trends-exporter on Linux.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultConfigPath is XDGConfigDir joined with DefaultConfigFile.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigDir(), DefaultConfigFile)
}

var (
	ErrEmptyEndpoint      = errors.New("provider endpoint cannot be empty")
	ErrInvalidTimeout     = errors.New("provider timeout must be positive")
	ErrInvalidMaxTerms    = errors.New("provider max_terms must be positive")
	ErrInvalidConcurrency = errors.New("export concurrency must be positive")
)

// Validate returns the first invalid setting it finds.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Provider.Endpoint) == "" {
		return ErrEmptyEndpoint
	}
	if c.Provider.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimeout, c.Provider.TimeoutSeconds)
	}
	if c.Provider.MaxTerms <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxTerms, c.Provider.MaxTerms)
	}
	if c.Export.Concurrency <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Export.Concurrency)
	}
	return nil
}
