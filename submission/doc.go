// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package submission defines the single network boundary of the kiosk:
inserting one SurveyResponse into the response table.

# Contract

	err := client.Insert(ctx, resp)

Insert is called at most once per user submit. There is no partial
success and no idempotency key, so a manual retry after a failure may
create a duplicate row.

# Errors

Every failure is a *SubmissionError carrying the backend name, the HTTP
status when there is one, and the wrapped cause:

	var se *submission.SubmissionError
	if errors.As(err, &se) {
		slog.Warn("insert rejected", "status", se.StatusCode)
	}

# Backends

  - postgrest: Supabase / PostgREST hosted table over HTTPS
  - sqlstore: database/sql table on Postgres (lib/pq) or SQLite (modernc)
  - mongostore: MongoDB collection
*/
package submission
