// Package config loads the application settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk settings file. All fields have defaults so a
// missing file or empty document is usable as-is.
type Config struct {
	// DBPath is the SQLite project database location.
	DBPath string `yaml:"dbPath"`
	// HistoryLimit caps how many undo snapshots are retained.
	HistoryLimit int `yaml:"historyLimit"`
	// Preview controls the local generated-code server.
	Preview PreviewConfig `yaml:"preview"`
	// Autosave writes the open project back to the store after every
	// history commit, once the project has been saved or loaded.
	Autosave bool `yaml:"autosave"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

type PreviewConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:       defaultDBPath(),
		HistoryLimit: 50,
		Preview:      PreviewConfig{Enabled: true, Addr: "127.0.0.1:9610"},
		Autosave:     true,
		LogLevel:     "info",
	}
}

// Load reads path and overlays it on the defaults. A missing file is not
// an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = Default().HistoryLimit
	}
	if cfg.Preview.Addr == "" {
		cfg.Preview.Addr = Default().Preview.Addr
	}
	if cfg.DBPath == "" {
		cfg.DBPath = Default().DBPath
	}
	return cfg, nil
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vellum.db"
	}
	return filepath.Join(dir, "vellum", "projects.db")
}
