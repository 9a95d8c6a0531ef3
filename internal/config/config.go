package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DBPath   string `yaml:"db_path"`
	LogLevel string `yaml:"log_level"`
	Output   string `yaml:"output"`
	// HistoryLimit caps how many snapshots the undo/redo engine loads.
	HistoryLimit int `yaml:"history_limit"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. ~/.config/dietplan/config.yaml (YAML)
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:     "info",
		Output:       "table",
		HistoryLimit: 50,
	}

	// Load .env.local if it exists (walking up parent directories)
	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	// YAML config is optional; ignore a missing file.
	if err := loadYAMLConfig(cfg); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	// Override with environment variables
	if dbPath := os.Getenv("DIETPLAN_DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel := os.Getenv("DIETPLAN_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if output := os.Getenv("DIETPLAN_OUTPUT"); output != "" {
		cfg.Output = output
	}

	// Set defaults if not configured
	if cfg.DBPath == "" {
		// Check for project-local database first
		if _, err := os.Stat(".dietplan/dietplan.db"); err == nil {
			cfg.DBPath = ".dietplan/dietplan.db"
		} else {
			// Fall back to user-global database
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			cfg.DBPath = filepath.Join(homeDir, ".local", "share", "dietplan", "dietplan.db")
		}
	}

	return cfg, nil
}

// findEnvLocal walks up from the working directory looking for .env.local
func findEnvLocal() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadYAMLConfig merges ~/.config/dietplan/config.yaml into cfg if present
func loadYAMLConfig(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(homeDir, ".config", "dietplan", "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
