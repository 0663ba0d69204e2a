// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the kiosk survey.

# Handler Types

  - SurveyHandler: drives the survey.Controller from the kiosk page
  - StatusHandler: counters and uptime for whoever maintains the tablet

Both wrap the single controller built in main:

	surveyHandler := handlers.NewSurveyHandler(ctrl)
	statusHandler := handlers.NewStatusHandler(ctrl, "supabase")

# Survey Flow

Every successful call answers with the full survey.View:

	GET  /survey                   → GetView
	POST /survey/score             → SelectScore    {"score": 9}
	POST /survey/hover             → Hover          {"target": "score", "value": 3}
	POST /survey/ratings/{aspect}  → SetRating      {"value": 4}
	POST /survey/comment           → SetComment     {"comment": "..."}
	POST /survey/submit            → Submit
	POST /survey/reset             → Reset

# Errors

	400 invalid JSON, score or aspect
	409 wrong step, or a submission already in flight
	422 submit without a score
	502 the response table rejected the insert
	503 the controller is shut down
*/
package handlers
