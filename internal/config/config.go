// Package config handles the tpm configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat tpm configuration
type Config struct {
	Version string `json:"version"`
	DBPath  string `json:"db_path,omitempty"` // overrides the default database location
}

// LoadConfig reads .tpm/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".tpm", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	tpmDir := filepath.Join(dir, ".tpm")
	if err := os.MkdirAll(tpmDir, 0755); err != nil {
		return fmt.Errorf("failed to create .tpm dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(tpmDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DatabasePath resolves the database location: explicit config wins,
// otherwise ~/.tpm/tpm.db.
func DatabasePath(cfg *Config) (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tpm", "tpm.db"), nil
}
