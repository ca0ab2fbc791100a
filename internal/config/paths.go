package config

import (
	"os"
	"path/filepath"
)

// DataDir returns the directory holding the ledger database and daemon
// state: the configured directory, else $XDG_DATA_HOME/finflex, else
// ~/.local/share/finflex.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "finflex")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "finflex")
}

// LedgerPath returns the path of the SQLite ledger.
func LedgerPath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "ledger.db")
}
