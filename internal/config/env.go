package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvDataDir  = "FINFLEX_DATA_DIR"
	EnvCurrency = "FINFLEX_CURRENCY"
	EnvLocale   = "FINFLEX_LOCALE"
	EnvLogLevel = "FINFLEX_LOG_LEVEL"
	EnvAMQPURL  = "FINFLEX_AMQP_URL"
)

// loadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.General.Currency = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.General.Locale = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvAMQPURL); v != "" {
		cfg.AMQP.URL = v
	}
}
