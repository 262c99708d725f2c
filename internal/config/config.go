// Package config loads and persists the taskbot configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/taskbot-dev/taskbot/internal/filelock"
)

const (
	// ConfigFileName is the name of the config file inside the config dir.
	ConfigFileName = "config.yml"

	// DefaultDBName is the local task database created next to the config.
	DefaultDBName = "tasks.db"

	// TokenEnvVar overrides the configured API token when set.
	TokenEnvVar = "TASKBOT_TOKEN"

	fileMode = 0o600
	dirMode  = 0o750
)

// ErrInvalid is wrapped by all validation failures.
var ErrInvalid = errors.New("invalid config")

// Backend modes.
const (
	ModeAPI   = "api"
	ModeLocal = "local"
)

// Config represents the taskbot configuration.
type Config struct {
	Mode    string     `yaml:"mode"`
	API     APIConfig  `yaml:"api,omitempty"`
	DBPath  string     `yaml:"db_path,omitempty"`
	Theme   string     `yaml:"theme,omitempty"`
	Haptics bool       `yaml:"haptics"`
	User    UserConfig `yaml:"user,omitempty"`

	// dir is the absolute path to the config directory (not serialized).
	dir string `yaml:"-"`
}

// APIConfig holds the remote backend settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	Token   string `yaml:"token,omitempty"`
}

// UserConfig holds the display identity shown in greetings.
type UserConfig struct {
	FirstName string `yaml:"first_name,omitempty"`
	LastName  string `yaml:"last_name,omitempty"`
}

// NewDefault creates a Config with default values: local mode with a
// database next to the config file.
func NewDefault() *Config {
	return &Config{
		Mode:    ModeLocal,
		Haptics: true,
	}
}

// Dir returns the absolute path to the config directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the config directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// DatabasePath returns the local database path, defaulting to one next
// to the config file.
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.dir, DefaultDBName)
}

// Token returns the API token, preferring the environment override.
func (c *Config) Token() string {
	if v := os.Getenv(TokenEnvVar); v != "" {
		return v
	}
	return c.API.Token
}

// DisplayName returns the configured user name, or empty.
func (c *Config) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(c.User.FirstName) + " " + strings.TrimSpace(c.User.LastName))
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeAPI:
		if c.API.BaseURL == "" {
			return fmt.Errorf("%w: api.base_url is required in api mode", ErrInvalid)
		}
	case ModeLocal:
	default:
		return fmt.Errorf("%w: mode must be %q or %q, got %q", ErrInvalid, ModeAPI, ModeLocal, c.Mode)
	}
	switch c.Theme {
	case "", "light", "dark":
	default:
		return fmt.Errorf("%w: theme must be empty, \"light\", or \"dark\", got %q", ErrInvalid, c.Theme)
	}
	return nil
}

// Save writes the config to its config file, serialized against other
// taskbot processes through the lock file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	unlock, err := filelock.Lock(c.ConfigPath() + ".lock")
	if err != nil {
		return fmt.Errorf("locking config: %w", err)
	}
	defer unlock() //nolint:errcheck

	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// DefaultDir returns the per-user config directory for taskbot.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(base, "taskbot"), nil
}

// Load reads and validates the config from dir, creating a default
// config on first run.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	path := filepath.Join(absDir, ConfigFileName)
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
	if err != nil {
		if os.IsNotExist(err) {
			return create(absDir)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.dir = absDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// create writes a fresh default config into dir.
func create(dir string) (*Config, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	cfg := NewDefault()
	cfg.SetDir(dir)
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}
