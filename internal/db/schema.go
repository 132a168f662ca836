package db

import (
	"database/sql"
	"errors"
	"fmt"
)

const schema = `
-- Roster members
CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    team TEXT DEFAULT '',
    email TEXT DEFAULT '',
    bio TEXT DEFAULT '',
    links TEXT DEFAULT '[]',
    position INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_members_position ON members(position);
`

// migrations run in order; index i upgrades the schema to version i+1
var migrations = []string{
	`CREATE INDEX IF NOT EXISTS idx_members_team ON members(team)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_members_email ON members(email) WHERE email != ''`,
}

// SchemaVersion is the version a fully migrated database reports
var SchemaVersion = len(migrations)

// GetSchemaVersion returns the applied migration count
func (db *DB) GetSchemaVersion() (int, error) {
	var v int
	err := db.conn.QueryRow(`SELECT CAST(value AS INTEGER) FROM schema_info WHERE key = 'version'`).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}

// RunMigrations applies pending migrations and returns how many ran
func (db *DB) RunMigrations() (int, error) {
	if _, err := db.conn.Exec(schema); err != nil {
		return 0, fmt.Errorf("ensure schema: %w", err)
	}
	current, err := db.GetSchemaVersion()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}

	applied := 0
	for i := current; i < len(migrations); i++ {
		tx, err := db.conn.Begin()
		if err != nil {
			return applied, err
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_info (key, value) VALUES ('version', ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, fmt.Sprint(i+1)); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("record migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}
