// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite C code — no C compiler needed, works everywhere Go works.
//
// DOCUMENT COLUMNS:
// The profiles table keeps skills, social links, experience and education
// as JSON TEXT columns rather than child tables. A profile behaves like one
// document: every sub-collection edit rewrites a single row, and SQLite's
// row-level write gives the same atomicity a document database gives per
// document. The trade-off — no SQL queries over individual entries — costs
// nothing here because the API only ever reads whole profiles.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite" in its init().
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The concrete repositories hang off it
// via Users() and Profiles() so both share one pool and one lifecycle.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
// Use ":memory:" in tests for a throwaway in-memory database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection: letting the pool open a
	// second connection would hand out a second, empty database. One
	// connection keeps every caller on the same data.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// sql.Open doesn't actually connect — Ping forces the first connection
	// so a bad path or permissions problem surfaces at startup, not on the
	// first request.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress — important
	// for a web server where list-profiles and upsert-profile overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite; we want profiles.user_id
	// to actually reference users.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Call via defer wherever New succeeds.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository backed by this database.
func (db *DB) Users() *UserDB {
	return &UserDB{conn: db.conn}
}

// Profiles returns the profile repository backed by this database.
func (db *DB) Profiles() *ProfileDB {
	return &ProfileDB{conn: db.conn}
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent
// — safe to run on every startup against an existing database.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			avatar_url    TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// user_id is UNIQUE: exactly one profile per user. The JSON columns hold
	// the document sub-collections; '[]' / '{}' defaults keep scans simple.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			id              TEXT PRIMARY KEY,
			user_id         TEXT NOT NULL UNIQUE REFERENCES users(id),
			company         TEXT NOT NULL DEFAULT '',
			website         TEXT NOT NULL DEFAULT '',
			location        TEXT NOT NULL DEFAULT '',
			status          TEXT NOT NULL DEFAULT '',
			skills          TEXT NOT NULL DEFAULT '[]',
			bio             TEXT NOT NULL DEFAULT '',
			github_username TEXT NOT NULL DEFAULT '',
			social          TEXT NOT NULL DEFAULT '{}',
			experience      TEXT NOT NULL DEFAULT '[]',
			education       TEXT NOT NULL DEFAULT '[]',
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id);
	`)
	if err != nil {
		return fmt.Errorf("creating profiles table: %w", err)
	}

	return nil
}
