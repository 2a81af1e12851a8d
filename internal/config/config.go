// Package config handles configuration loading from files, defaults, and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	UI      UIConfig      `toml:"ui"`
	Storage StorageConfig `toml:"storage"`
}

// UIConfig holds calendar display settings.
type UIConfig struct {
	TimeFormat     string   `toml:"time_format"`       // "12" or "24"
	FirstDayOfWeek int      `toml:"first_day_of_week"` // 0=Sunday .. 6=Saturday
	Colors         []string `toml:"colors"`            // palette, indexed by event type-1
	HourHeight     float64  `toml:"hour_height_px"`    // time-grid pixels per hour
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// defaultColors is the built-in 8-slot event palette.
var defaultColors = []string{
	"#3f51b5", "#e3165b", "#ff6652", "#4caf50",
	"#ff9800", "#03a9f4", "#9e9e9e", "#27282f",
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			TimeFormat:     "24",
			FirstDayOfWeek: 0,
			Colors:         append([]string(nil), defaultColors...),
			HourHeight:     50,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "calgrid.db"
	}
	return filepath.Join(home, ".local", "share", "calgrid", "calgrid.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "calgrid", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and
// env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path. It starts with
// defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CALGRID_TIME_FORMAT"); v != "" {
		cfg.UI.TimeFormat = v
	}
	if v := os.Getenv("CALGRID_FIRST_DAY_OF_WEEK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UI.FirstDayOfWeek = n
		}
	}
	if v := os.Getenv("CALGRID_HOUR_HEIGHT_PX"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.UI.HourHeight = f
		}
	}
	if v := os.Getenv("CALGRID_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.UI.TimeFormat != "12" && c.UI.TimeFormat != "24" {
		return fmt.Errorf("time_format must be \"12\" or \"24\", got %q", c.UI.TimeFormat)
	}
	if c.UI.FirstDayOfWeek < 0 || c.UI.FirstDayOfWeek > 6 {
		return fmt.Errorf("first_day_of_week must be 0..6, got %d", c.UI.FirstDayOfWeek)
	}
	if len(c.UI.Colors) == 0 {
		return errors.New("at least one palette color must be configured")
	}
	for _, color := range c.UI.Colors {
		if !isHexColor(color) {
			return fmt.Errorf("invalid palette color: %q", color)
		}
	}
	if c.UI.HourHeight <= 0 {
		return fmt.Errorf("hour_height_px must be positive, got %v", c.UI.HourHeight)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Color returns the palette color for the zero-based index, wrapping around
// the configured palette.
func (c *Config) Color(idx int) string {
	if idx < 0 {
		idx = 0
	}
	return c.UI.Colors[idx%len(c.UI.Colors)]
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
