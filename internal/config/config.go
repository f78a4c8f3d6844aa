package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// PanelDefaults holds the geometry and window flags applied to newly created
// panels.
type PanelDefaults struct {
	Title       string `yaml:"title"`
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Resizable   *bool  `yaml:"resizable"`
	Decorated   *bool  `yaml:"decorated"`
	AlwaysOnTop *bool  `yaml:"always_on_top"`
	SkipTaskbar *bool  `yaml:"skip_taskbar"`
}

// LoggingConfig controls the panel action log.
type LoggingConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Level     string `yaml:"level"` // debug, info, warn, error
	File      string `yaml:"file"`
	MaxSizeMB int    `yaml:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files"`
}

// ReconcilerConfig controls registry reconciliation against the live host
// window set.
type ReconcilerConfig struct {
	Enabled         *bool `yaml:"enabled"`
	IntervalSeconds int   `yaml:"interval_seconds"`
}

// Config is the paneld daemon configuration.
type Config struct {
	Panel      PanelDefaults    `yaml:"panel"`
	Display    string           `yaml:"display,omitempty"`
	XAuthority string           `yaml:"xauthority,omitempty"`
	Debug      bool             `yaml:"debug"`
	Logging    LoggingConfig    `yaml:"logging"`
	Reconciler ReconcilerConfig `yaml:"reconciler"`
}

// DefaultConfig returns the stock configuration: the classic 400x300 panel
// at (100,100), always on top, reconciliation every 10 seconds.
func DefaultConfig() *Config {
	return &Config{
		Panel: PanelDefaults{
			Title:       "Floating Panel",
			X:           100,
			Y:           100,
			Width:       400,
			Height:      300,
			Resizable:   boolPtr(true),
			Decorated:   boolPtr(true),
			AlwaysOnTop: boolPtr(true),
			SkipTaskbar: boolPtr(false),
		},
		Logging: LoggingConfig{
			Enabled:   false,
			Level:     "info",
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
		Reconciler: ReconcilerConfig{
			Enabled:         boolPtr(true),
			IntervalSeconds: 10,
		},
	}
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "paneld", "config.yaml"), nil
}

// LayoutsPath returns the saved panel layouts file location.
func LayoutsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "paneld", "layouts.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from an explicit file path, merging the
// file's values over the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the daemon cannot work with.
func (c *Config) Validate() error {
	if c.Panel.Width <= 0 || c.Panel.Height <= 0 {
		return fmt.Errorf("panel size must be positive, got %dx%d", c.Panel.Width, c.Panel.Height)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	if c.Reconciler.IntervalSeconds < 0 {
		return fmt.Errorf("reconciler interval must not be negative, got %d", c.Reconciler.IntervalSeconds)
	}
	return nil
}

// ReconcilerEnabled reports whether registry reconciliation should run.
func (c *Config) ReconcilerEnabled() bool {
	if c.Reconciler.Enabled == nil {
		return true
	}
	return *c.Reconciler.Enabled
}

// Print writes the effective configuration as YAML.
func (c *Config) Print(w *os.File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(c)
}

func boolPtr(b bool) *bool { return &b }

// BoolOr dereferences an optional bool with a fallback.
func BoolOr(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
