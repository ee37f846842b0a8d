package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Manager loads configuration from an optional YAML file plus environment overrides.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
	path   string
}

func NewManager() *Manager {
	return &Manager{
		viper: viper.New(),
	}
}

// Load reads configPath, or DefaultConfigPath when empty. A missing default file
// is not an error; a missing explicit file is.
func (m *Manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath()
	}

	m.setupViper()

	if _, err := os.Stat(configPath); err == nil {
		m.viper.SetConfigFile(configPath)
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		m.path = configPath
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	var cfg Config
	if err := m.viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m.config = &cfg
	return &cfg, nil
}

// GetConfig returns the last successfully loaded config, or defaults.
func (m *Manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return NewConfig()
	}
	return m.config
}

// Path returns the file the config was read from, empty when only defaults applied.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

func (m *Manager) setupViper() {
	m.viper.SetConfigType("yaml")
	m.viper.SetEnvPrefix(EnvPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	defaults := NewConfig()
	m.viper.SetDefault("provider.endpoint", defaults.Provider.Endpoint)
	m.viper.SetDefault("provider.language", defaults.Provider.Language)
	m.viper.SetDefault("provider.timeout_seconds", defaults.Provider.TimeoutSeconds)
	m.viper.SetDefault("provider.max_terms", defaults.Provider.MaxTerms)
	m.viper.SetDefault("provider.user_agent", defaults.Provider.UserAgent)
	m.viper.SetDefault("export.output_dir", defaults.Export.OutputDir)
	m.viper.SetDefault("export.default_regions", defaults.Export.DefaultRegions)
	m.viper.SetDefault("export.concurrency", defaults.Export.Concurrency)
	m.viper.SetDefault("logger.level", defaults.Logger.Level)
	m.viper.SetDefault("logger.format", defaults.Logger.Format)
}

// ErrConfigExists is returned by WriteDefault when it would overwrite a file.
var ErrConfigExists = errors.New("configuration file already exists")

// WriteDefault writes the default configuration as YAML to path, creating
// parent directories. Existing files are left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(NewConfig())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
