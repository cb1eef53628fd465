// Package config provides configuration management for fokus.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Bounds of default_timer_duration, in minutes.
const (
	MinTimerMinutes     = 1
	MaxTimerMinutes     = 999
	DefaultTimerMinutes = 25
)

// AppName names the directory fokus keeps its files in.
const AppName = "fokus"

// header is written above the generated settings.
const header = "# fokus Configuration File\n\n"

// Config holds all configuration for fokus.
type Config struct {
	DefaultTimerDuration int                `mapstructure:"default_timer_duration" toml:"default_timer_duration" comment:"Default timer duration (in minutes)\nMust be between 1 and 999"`
	Notifications        NotificationConfig `mapstructure:"notifications" toml:"notifications"`
	Storage              StorageConfig      `mapstructure:"storage" toml:"storage"`
	Theme                ThemeConfig        `mapstructure:"theme" toml:"theme"`

	// Reset is set when the file on disk was invalid and has been replaced
	// by the defaults.
	Reset bool `mapstructure:"-" toml:"-"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled" comment:"Desktop notification when the timer finishes"`
	Sound   bool `mapstructure:"sound" toml:"sound" comment:"Play a beep with the notification"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir" toml:"data_dir" comment:"Directory for history and lock files (empty: next to this file)"`
	Backend string `mapstructure:"backend" toml:"backend" comment:"History backend: json or sqlite"`
}

// ThemeConfig holds the colours of the interface.
type ThemeConfig struct {
	ColorHeader  string `mapstructure:"color_header" toml:"color_header"`
	ColorBorder  string `mapstructure:"color_border" toml:"color_border"`
	ColorClock   string `mapstructure:"color_clock" toml:"color_clock"`
	ColorExpired string `mapstructure:"color_expired" toml:"color_expired"`
	ColorToday   string `mapstructure:"color_today" toml:"color_today"`
	ColorHelp    string `mapstructure:"color_help" toml:"color_help"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorHeader:  "#A0AEC0",
		ColorBorder:  "#7C6FE0",
		ColorClock:   "#FFFFFF",
		ColorExpired: "#FF0000",
		ColorToday:   "#4ECDC4",
		ColorHelp:    "#95A5A6",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultTimerDuration: DefaultTimerMinutes,
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			Backend: "json",
		},
		Theme: DefaultThemeConfig(),
	}
}

// TimerDuration returns the configured countdown length.
func (c *Config) TimerDuration() time.Duration {
	return time.Duration(c.DefaultTimerDuration) * time.Minute
}

// Validate checks the values a hand-edited file may get wrong.
func (c *Config) Validate() error {
	if c.DefaultTimerDuration < MinTimerMinutes || c.DefaultTimerDuration > MaxTimerMinutes {
		return fmt.Errorf("default_timer_duration %d out of range [%d, %d]",
			c.DefaultTimerDuration, MinTimerMinutes, MaxTimerMinutes)
	}
	switch c.Storage.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}

// Load loads the configuration from the default location.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration at path. A missing file is created with
// the defaults. A file that cannot be parsed, lacks default_timer_duration or
// holds out-of-range values is overwritten with the defaults.
func LoadFrom(path string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return writeDefaults(path, false)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return writeDefaults(path, true)
	}
	if !v.InConfig("default_timer_duration") {
		return writeDefaults(path, true)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return writeDefaults(path, true)
	}
	if err := cfg.Validate(); err != nil {
		return writeDefaults(path, true)
	}

	dataDir, err := resolveDataDir(cfg.Storage.DataDir, path)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir
	return &cfg, nil
}

// Save writes cfg to path as commented TOML.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	body, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(header), body...), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

func writeDefaults(path string, reset bool) (*Config, error) {
	cfg := DefaultConfig()
	if err := Save(path, cfg); err != nil {
		return nil, err
	}
	dataDir, err := resolveDataDir(cfg.Storage.DataDir, path)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir
	cfg.Reset = reset
	return cfg, nil
}

// resolveDataDir expands a leading ~ and defaults to the config directory.
func resolveDataDir(dir, configPath string) (string, error) {
	switch {
	case dir == "":
		return filepath.Dir(configPath), nil
	case dir == "~" || strings.HasPrefix(dir, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(dir, "~")), nil
	default:
		return dir, nil
	}
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("default_timer_duration", d.DefaultTimerDuration)
	v.SetDefault("notifications.enabled", d.Notifications.Enabled)
	v.SetDefault("notifications.sound", d.Notifications.Sound)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("theme.color_header", d.Theme.ColorHeader)
	v.SetDefault("theme.color_border", d.Theme.ColorBorder)
	v.SetDefault("theme.color_clock", d.Theme.ColorClock)
	v.SetDefault("theme.color_expired", d.Theme.ColorExpired)
	v.SetDefault("theme.color_today", d.Theme.ColorToday)
	v.SetDefault("theme.color_help", d.Theme.ColorHelp)
}
