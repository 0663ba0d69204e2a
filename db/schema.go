// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names double as database/sql driver names.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

var (
	ErrInvalidTableName = errors.New("invalid table name")
	ErrUnknownDialect   = errors.New("unknown database dialect")
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ValidateTableName rejects anything that is not a plain identifier,
// since the table name is interpolated into SQL.
func ValidateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTableName, name)
	}
	return nil
}

// Open connects and pings the database
func Open(dialect Dialect, dsn string) (*sql.DB, error) {
	if dialect != Postgres && dialect != SQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}
	return conn, nil
}

// CreateSchema creates the response table and its index.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sql.DB, table string) error {
	if err := ValidateTableName(table); err != nil {
		return err
	}

	_, err := conn.Exec(strings.ReplaceAll(schema, "{table}", table))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Placeholders returns the bind markers for n arguments: $1..$n for
// Postgres, ? for SQLite.
func Placeholders(d Dialect, n int) []string {
	out := make([]string, n)
	for i := range out {
		if d == Postgres {
			out[i] = "$" + strconv.Itoa(i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

// Portable across Postgres and SQLite. additional_ratings holds the
// JSON object, NULL when the kiosk has no detail step.
const schema = `
-- Survey responses
CREATE TABLE IF NOT EXISTS {table} (
    id TEXT PRIMARY KEY,
    location_id TEXT NOT NULL,
    score INTEGER NOT NULL CHECK (score >= 0 AND score <= 10),
    comment TEXT,
    additional_ratings TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_{table}_location_id ON {table}(location_id);
`
