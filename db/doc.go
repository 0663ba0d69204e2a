// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections and schema creation for the SQL
submission backends.

# Connecting

Open registers both drivers (lib/pq and modernc sqlite) and pings:

	conn, err := db.Open(db.Postgres, cfg.DatabaseURL)
	conn, err := db.Open(db.SQLite, "file:kiosk.db")

# Schema Creation

CreateSchema initializes the response table:

	if err := db.CreateSchema(conn, "surveys"); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and index.
The table name must be a plain identifier (ValidateTableName).

# Table

  - id: uuid text primary key
  - location_id: kiosk that produced the row
  - score: 0-10, enforced by a CHECK constraint
  - comment: free text
  - additional_ratings: JSON object of aspect stars, NULL when omitted
  - created_at: insert time

# Indexes

  - location_id
*/
package db
