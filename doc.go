// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Rate kiosk server.

Quickly Rate runs a Net Promoter Score survey on an unattended tablet:
a 0-10 recommendation score, optional 0-5 star ratings for five aspects
plus a comment, then a thank-you screen that resets itself for the
next guest. Each response is inserted into a remote table.

# Starting the Server

	LOCATION_ID=Squash SUPABASE_URL=https://xyz.supabase.co SUPABASE_ANON_KEY=... go run .

Or with flags and a local SQLite table:

	go run . -l Squash -b sqlite -d file:responses.db

A .env file in the working directory is loaded first; variables already
set in the environment win.

# Configuration

Required settings:

  - LOCATION_ID (-l): Kiosk location stored with every response
  - Backend credentials for the chosen SUBMISSION_BACKEND (-b):
    supabase needs SUPABASE_URL and SUPABASE_ANON_KEY, postgres needs
    DATABASE_URL (-d), mongo needs MONGO_URI

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - SURVEY_TABLE (-table): Table or collection (default: surveys)
  - SKIP_DETAIL (-skip-detail): Submit right after the score
  - TRANSITION_DELAY, THANKS_DELAY, SUBMIT_TIMEOUT: 400ms, 5s, 10s
  - LOCALE (-locale): es or en (default: es)
  - LOG_LEVEL, LOG_FILE: JSON logs, optionally to a rotating file

# Architecture

  - survey: Flow controller (scoring → detail → thanks) and view model
  - rating: Discrete rating scales and hover previews
  - submission: Client contract plus postgrest, sqlstore and mongostore
  - stream: Websocket hub pushing views to the kiosk page
  - handlers, router, middleware: HTTP surface
  - db: SQL schema, logging: slog setup, cliparse: configuration

See package documentation for each component.
*/
package main
