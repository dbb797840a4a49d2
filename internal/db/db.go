package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/tpm/internal/config"
)

var (
	db           *sql.DB
	pathOverride string
)

// SetPath overrides database path resolution, taking precedence over
// the config file. Must be called before the first GetDB.
func SetPath(path string) {
	pathOverride = path
}

// GetDB returns the database connection, initializing if needed.
// The location comes from .tpm/config.json when present, otherwise
// ~/.tpm/tpm.db.
func GetDB() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}

	path, err := resolvePath()
	if err != nil {
		return nil, err
	}

	opened, err := Open(path)
	if err != nil {
		return nil, err
	}
	db = opened
	return db, nil
}

// Open opens (and initializes) a database at an explicit path. Used by
// GetDB and by the one-shot import/export tools that point at a
// different store.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := InitSchema(conn); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return conn, nil
}

// Close closes the shared database connection.
func Close() error {
	if db != nil {
		err := db.Close()
		db = nil
		return err
	}
	return nil
}

// GetDBPath returns the resolved path to the database file.
func GetDBPath() (string, error) {
	return resolvePath()
}

func resolvePath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		cfg = nil // no config file is the common case
	}
	return config.DatabasePath(cfg)
}
