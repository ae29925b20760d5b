// Package database provides SQLite storage for session records, event history
// and the command log.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"skirmish/internal/config"
)

// MemoryPath opens a private in-process store.
const MemoryPath = ":memory:"

// ErrSchemaTooNew is returned when the file was written by a newer build.
var ErrSchemaTooNew = errors.New("database schema is newer than this build")

// DB is the history store of one process.
type DB struct {
	conn *sql.DB
}

// New opens the store at path with the default pragmas.
func New(path string) (*DB, error) {
	return Open(config.DatabaseConfig{Path: path})
}

// Open opens the store described by cfg, creating the file and its directory
// if missing, and brings the schema up to date.
func Open(cfg config.DatabaseConfig) (*DB, error) {
	if cfg.Path == "" {
		return nil, errors.New("database path is empty")
	}
	if cfg.Path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: the engine is single-threaded and ":memory:" is per connection
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.upgrade(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// dsn builds the driver connection string. Unset fields take the defaults.
func dsn(cfg config.DatabaseConfig) string {
	journal := strings.ToLower(strings.TrimSpace(cfg.JournalMode))
	if journal == "" {
		journal = "wal"
	}
	if cfg.Path == MemoryPath {
		journal = "memory"
	}
	timeout := cfg.BusyTimeout
	if timeout <= 0 {
		timeout = 5000
	}

	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", fmt.Sprintf("journal_mode(%s)", journal))
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", timeout))
	return cfg.Path + "?" + q.Encode()
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// SchemaVersion returns the number of schema steps applied to the file.
func (db *DB) SchemaVersion() (int, error) {
	var v int
	err := db.conn.QueryRow(`PRAGMA user_version`).Scan(&v)
	return v, err
}

// upgrade applies every schema step past the file's user_version, one
// transaction per step.
func (db *DB) upgrade() error {
	current, err := db.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > len(schema) {
		return fmt.Errorf("version %d, known %d: %w", current, len(schema), ErrSchemaTooNew)
	}

	for i := current; i < len(schema); i++ {
		step := schema[i]
		tx, err := db.conn.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(step.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("schema step %d (%s): %w", i+1, step.name, err)
		}
		// PRAGMA takes no bound parameters
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
