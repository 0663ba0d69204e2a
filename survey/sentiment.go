// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

// Sentiment is the NPS class of a score.
type Sentiment string

const (
	Detractor Sentiment = "detractor"
	Passive   Sentiment = "passive"
	Promoter  Sentiment = "promoter"
)

// Classify maps 0-6 to detractor, 7-8 to passive and 9-10 to promoter
func Classify(score int) Sentiment {
	switch {
	case score <= 6:
		return Detractor
	case score <= 8:
		return Passive
	default:
		return Promoter
	}
}

// Hue is the semantic color of the class
func (s Sentiment) Hue() string {
	switch s {
	case Detractor:
		return "warning"
	case Passive:
		return "neutral"
	case Promoter:
		return "positive"
	}
	return ""
}

// Class is the CSS color class used by the kiosk page
func (s Sentiment) Class() string {
	switch s {
	case Detractor:
		return "red"
	case Passive:
		return "yellow"
	case Promoter:
		return "green"
	}
	return ""
}
