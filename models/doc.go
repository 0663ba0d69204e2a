// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - SurveyResponse: score, comment, location_id, additional_ratings
  - Ratings: aspect -> 0-5 stars, always holding every aspect
  - Aspect: fixed rating keys (facilities, cleanliness, serviceAttention,
    ambiance, valueForMoney)

Ratings are clamped on write:

	r := models.NewRatings()
	r.Set(models.AspectFacilities, 4)

# Request Types

Types for parsing incoming JSON:

  - SelectScoreRequest: score (0-10)
  - HoverRequest: target ("score" or aspect), value (null clears)
  - RatingRequest: value (0-5)
  - CommentRequest: comment

# Response Types

  - StatusResponse: kiosk counters and humanized times
  - ErrorResponse: error, message

# Constants

Flow steps:

	StepScoring = "scoring"
	StepDetail  = "detail"
	StepThanks  = "thanks"

Bounds:

	MinScore, MaxScore   = 0, 10
	MinRating, MaxRating = 0, 5
*/
package models
