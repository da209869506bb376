// Package config handles configuration loading and validation for toastbar.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v7"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/toastbar/internal/core/styles"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "TOASTBAR_"

// Config holds the application configuration.
type Config struct {
	Toast    ToastConfig    `yaml:"toast"    envPrefix:"TOAST_"`
	TUI      TUIConfig      `yaml:"tui"      envPrefix:"TUI_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DATABASE_"`
	DataDir  string         `yaml:"-"` // set by caller, not from config file
}

// ToastConfig controls how individual toasts behave.
type ToastConfig struct {
	// TTL is how long a toast stays mounted before it dismisses itself.
	TTL time.Duration `yaml:"ttl" env:"TTL"`
	// MaxVisible caps the active list; the oldest entries are evicted first.
	MaxVisible int `yaml:"max_visible" env:"MAX_VISIBLE"`
	// MaxWidth caps the toast width in cells. Zero uses the full window width.
	MaxWidth int `yaml:"max_width" env:"MAX_WIDTH"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme        string        `yaml:"theme"         env:"THEME"`
	PollInterval time.Duration `yaml:"poll_interval" env:"POLL_INTERVAL"`
}

// DatabaseConfig holds SQLite connection pool settings.
type DatabaseConfig struct {
	MaxOpenConns int `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns int `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	BusyTimeout  int `yaml:"busy_timeout"   env:"BUSY_TIMEOUT"` // milliseconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Toast: ToastConfig{
			TTL:        5 * time.Second,
			MaxVisible: 5,
		},
		TUI: TUIConfig{
			Theme:        styles.DefaultTheme,
			PollInterval: 500 * time.Millisecond,
		},
		Database: DatabaseConfig{
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			BusyTimeout:  5000,
		},
	}
}

// Load reads configuration from configPath, applies TOASTBAR_* environment
// overrides, and sets the data directory. A missing file yields defaults.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.Parse(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// Re-set dataDir since Unmarshal may have cleared it
	cfg.DataDir = dataDir

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Toast.TTL == 0 {
		c.Toast.TTL = defaults.Toast.TTL
	}
	if c.Toast.MaxVisible == 0 {
		c.Toast.MaxVisible = defaults.Toast.MaxVisible
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.PollInterval == 0 {
		c.TUI.PollInterval = defaults.TUI.PollInterval
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Toast.TTL < 0 {
		return fmt.Errorf("toast.ttl cannot be negative")
	}

	if c.Toast.MaxVisible < 1 {
		return fmt.Errorf("toast.max_visible must be at least 1")
	}

	if c.Toast.MaxWidth < 0 {
		return fmt.Errorf("toast.max_width cannot be negative")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme (available: %v)", c.TUI.Theme, styles.ThemeNames())
	}

	if c.TUI.PollInterval < 0 {
		return fmt.Errorf("tui.poll_interval cannot be negative")
	}

	return nil
}
