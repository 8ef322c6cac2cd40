// Package sqlite provides SQLite-based persistent storage for Daily Check.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// One row per local calendar date. Counts are fixed columns keyed
		// by the closed activity enum — absent row means all zeros.
		`CREATE TABLE IF NOT EXISTS activity_logs (
			date               TEXT PRIMARY KEY,
			contacts           INTEGER NOT NULL DEFAULT 0,
			videos_sent        INTEGER NOT NULL DEFAULT 0,
			appointments       INTEGER NOT NULL DEFAULT 0,
			new_contracts      INTEGER NOT NULL DEFAULT 0,
			new_family_utility INTEGER NOT NULL DEFAULT 0
		)`,

		// Contract subtype attribution. May sum to less than new_contracts
		// for a day — legacy undetailed entries have no subtype rows.
		`CREATE TABLE IF NOT EXISTS contract_details (
			date    TEXT NOT NULL,
			subtype TEXT NOT NULL,
			count   INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (date, subtype)
		)`,

		// Captured leads, attached to a day's count increment.
		`CREATE TABLE IF NOT EXISTS leads (
			id          TEXT PRIMARY KEY,
			date        TEXT NOT NULL,
			name        TEXT NOT NULL,
			phone       TEXT NOT NULL DEFAULT '',
			note        TEXT NOT NULL DEFAULT '',
			activity    TEXT NOT NULL,
			captured_at INTEGER NOT NULL,
			status      TEXT NOT NULL DEFAULT 'new'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_date ON leads(date)`,

		// Unlocked achievements — grow-only set.
		`CREATE TABLE IF NOT EXISTS achievements (
			id          TEXT PRIMARY KEY,
			unlocked_at INTEGER NOT NULL,
			notified    BOOLEAN DEFAULT 0
		)`,

		// Notification log (policy: daily cap, quiet hours).
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			severity   TEXT NOT NULL,
			message    TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_created ON notifications(created_at)`,

		// Key-value store for runtime settings (goals set via CLI/API).
		`CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Settings KV ────────────────────────────────────────────────────────────

// SetSetting stores a key-value pair in settings.
func (d *DB) SetSetting(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetSetting retrieves a settings value. Returns "" if key not found.
func (d *DB) GetSetting(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}
