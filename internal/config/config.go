// Package config loads and saves finflex settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all finflex settings. The financial profile itself lives in
// the ledger database, not here.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
	Daemon     DaemonConfig     `toml:"daemon"`
	AMQP       AMQPConfig       `toml:"amqp"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds display and storage preferences.
type GeneralConfig struct {
	Currency string `toml:"currency"`
	Locale   string `toml:"locale"`
	DataDir  string `toml:"data_dir,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard settings.
type TUIConfig struct {
	RefreshSeconds int `toml:"refresh_seconds"`
}

// DaemonConfig holds background service settings.
type DaemonConfig struct {
	Addr            string `toml:"addr"`
	IntervalSeconds int    `toml:"interval_seconds"`
	EventsBuffer    int    `toml:"events_buffer"`
}

// AMQPConfig enables publishing snapshot events when URL is set.
type AMQPConfig struct {
	URL        string `toml:"url,omitempty"`
	Exchange   string `toml:"exchange"`
	RoutingKey string `toml:"routing_key"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency: "₹",
			Locale:   "en-IN",
		},
		Appearance: AppearanceConfig{
			Theme: "emerald",
		},
		TUI: TUIConfig{
			RefreshSeconds: 1,
		},
		Daemon: DaemonConfig{
			Addr:            "127.0.0.1:8797",
			IntervalSeconds: 15,
			EventsBuffer:    200,
		},
		AMQP: AMQPConfig{
			Exchange:   "finflex",
			RoutingKey: "finflex.snapshot",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finflex")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finflex")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies .env and environment overrides.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := loadDotEnv(filepath.Join(Dir(), ".env")); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Validate reports every setting that cannot be used.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.General.Currency) == "" {
		problems = append(problems, "general.currency must not be empty")
	}
	if c.TUI.RefreshSeconds < 1 {
		problems = append(problems, "tui.refresh_seconds must be at least 1")
	}
	if c.Daemon.IntervalSeconds < 2 {
		problems = append(problems, "daemon.interval_seconds must be at least 2")
	}
	if c.Daemon.EventsBuffer < 1 {
		problems = append(problems, "daemon.events_buffer must be positive")
	}
	if c.Daemon.Addr == "" {
		problems = append(problems, "daemon.addr must not be empty")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q must be text or json", c.Log.Format))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
}

// RefreshInterval returns the dashboard tick interval.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.TUI.RefreshSeconds) * time.Second
}

// DaemonInterval returns the daemon recompute interval.
func (c Config) DaemonInterval() time.Duration {
	return time.Duration(c.Daemon.IntervalSeconds) * time.Second
}
