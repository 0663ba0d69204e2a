// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

Load an optional .env file, then parse flags:

	if err := cliparse.LoadEnvFile(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values already present in the environment win over the .env file.

# Config Fields

  - Port: Server listen port (default: 3318)
  - LocationID: Kiosk location baked into every response (required)
  - Backend: supabase, postgres, sqlite or mongo (default: supabase)
  - SupabaseURL, SupabaseKey: hosted table credentials
  - DatabaseURL: postgres DSN or sqlite path
  - MongoURI, MongoDatabase: mongo connection
  - Table: table or collection name (default: surveys)
  - SkipDetail: score-only kiosk, no detail step
  - TransitionDelay: pause after a score click (default: 400ms)
  - ThanksDelay: thank-you display time (default: 5s)
  - SubmitTimeout: per-insert deadline (default: 10s)
  - Locale: es or en (default: es)
  - LogLevel, LogFile: logging setup

# CLI Flags

	-p                  Server port
	-l                  Location ID
	-b                  Submission backend
	-d                  Database URL
	--table             Table name
	--skip-detail       Score-only flow
	--transition-delay  Step transition pause
	--thanks-delay      Thank-you display time
	--locale            UI language
	--log-level         Log level

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	LOCATION_ID        → -l
	SUBMISSION_BACKEND → -b
	DATABASE_URL       → -d
	SURVEY_TABLE       → --table
	SKIP_DETAIL        → --skip-detail
	TRANSITION_DELAY   → --transition-delay
	THANKS_DELAY       → --thanks-delay
	LOCALE             → --locale
	LOG_LEVEL          → --log-level

Environment only: SUPABASE_URL, SUPABASE_ANON_KEY, MONGO_URI,
MONGO_DATABASE, SUBMIT_TIMEOUT, LOG_FILE.

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - LOCATION_ID is missing
  - the backend is unknown or its credentials are missing
  - a duration does not parse or is out of range
  - the locale is not es or en
*/
package cliparse
