// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package sqlstore writes survey responses to a Postgres or SQLite table.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-rate/db"
	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/submission"
)

type Store struct {
	db        *sql.DB
	dialect   db.Dialect
	table     string
	insertSQL string
}

// New prepares the insert statement text for table. The schema is not
// created here; call db.CreateSchema first.
func New(conn *sql.DB, dialect db.Dialect, table string) (*Store, error) {
	if err := db.ValidateTableName(table); err != nil {
		return nil, err
	}

	marks := db.Placeholders(dialect, 6)
	insertSQL := fmt.Sprintf(`
		INSERT INTO %s (id, location_id, score, comment, additional_ratings, created_at)
		VALUES (%s)
	`, table, strings.Join(marks, ", "))

	return &Store{db: conn, dialect: dialect, table: table, insertSQL: insertSQL}, nil
}

// Insert writes one row with a fresh uuid.
func (s *Store) Insert(ctx context.Context, resp models.SurveyResponse) error {
	var ratings sql.NullString
	if resp.AdditionalRatings != nil {
		b, err := json.Marshal(resp.AdditionalRatings)
		if err != nil {
			return submission.Wrap(string(s.dialect), err)
		}
		ratings = sql.NullString{String: string(b), Valid: true}
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, s.insertSQL,
		id, resp.LocationID, resp.Score, resp.Comment, ratings, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert survey response", "error", err, "table", s.table, "location_id", resp.LocationID)
		return &submission.SubmissionError{
			Backend: string(s.dialect),
			Message: err.Error(),
			Err:     err,
		}
	}

	slog.Debug("survey response stored", "id", id, "table", s.table)
	return nil
}
