package models

import "time"

// Flow steps
const (
	StepScoring = "scoring"
	StepDetail  = "detail"
	StepThanks  = "thanks"
)

// Aspect is a key of the supplementary star ratings.
type Aspect string

const (
	AspectFacilities       Aspect = "facilities"
	AspectCleanliness      Aspect = "cleanliness"
	AspectServiceAttention Aspect = "serviceAttention"
	AspectAmbiance         Aspect = "ambiance"
	AspectValueForMoney    Aspect = "valueForMoney"
)

// Aspects lists every rating aspect in display order.
var Aspects = []Aspect{
	AspectFacilities,
	AspectCleanliness,
	AspectServiceAttention,
	AspectAmbiance,
	AspectValueForMoney,
}

// Score and rating bounds
const (
	MinScore  = 0
	MaxScore  = 10
	MinRating = 0
	MaxRating = 5
)

// IsAspect reports whether a is one of the fixed rating aspects.
func IsAspect(a Aspect) bool {
	for _, known := range Aspects {
		if a == known {
			return true
		}
	}
	return false
}

// ClampRating forces v into [MinRating, MaxRating].
func ClampRating(v int) int {
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// Ratings maps every aspect to its 0-5 star value.
type Ratings map[Aspect]int

// NewRatings returns ratings with every aspect present and unset (0).
func NewRatings() Ratings {
	r := make(Ratings, len(Aspects))
	for _, a := range Aspects {
		r[a] = 0
	}
	return r
}

// Set stores a clamped value for a known aspect
func (r Ratings) Set(a Aspect, v int) {
	r[a] = ClampRating(v)
}

// Clone copies the ratings so callers can hold a stable snapshot.
func (r Ratings) Clone() Ratings {
	if r == nil {
		return nil
	}
	out := make(Ratings, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Domain types

// SurveyResponse is the record written to the response table.
// AdditionalRatings is nil (and omitted on the wire) when the kiosk
// runs without the detail step.
type SurveyResponse struct {
	Score             int     `json:"score" bson:"score"`
	Comment           string  `json:"comment" bson:"comment"`
	LocationID        string  `json:"location_id" bson:"location_id"`
	AdditionalRatings Ratings `json:"additional_ratings,omitempty" bson:"additional_ratings,omitempty"`
}

// Request types

type SelectScoreRequest struct {
	Score *int `json:"score"`
}

// Target is "score" or an aspect key; a null value clears the preview.
type HoverRequest struct {
	Target string `json:"target"`
	Value  *int   `json:"value"`
}

type RatingRequest struct {
	Value *int `json:"value"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}

// Response types

type StatusResponse struct {
	LocationID     string     `json:"location_id"`
	Step           string     `json:"step"`
	Backend        string     `json:"backend"`
	Submitted      int        `json:"submitted"`
	Failed         int        `json:"failed"`
	LastSubmitted  *time.Time `json:"last_submitted_at,omitempty"`
	LastSubmission string     `json:"last_submission"`
	Uptime         string     `json:"uptime"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
