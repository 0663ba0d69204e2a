// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/rating"
)

// View is what the kiosk page renders. It is rebuilt from the form state
// on every change and never stored.
type View struct {
	Version    uint64        `json:"version"`
	Session    string        `json:"session"`
	Step       string        `json:"step"`
	LocationID string        `json:"location_id"`
	Score      *int          `json:"score"`
	Sentiment  Sentiment     `json:"sentiment,omitempty"`
	Hue        string        `json:"hue,omitempty"`
	ScoreScale []ScoreButton `json:"score_scale"`
	Ratings    []AspectView  `json:"ratings,omitempty"`
	Comment    string        `json:"comment"`
	Busy       bool          `json:"busy"`
	CanSubmit  bool          `json:"can_submit"`
	Error      string        `json:"error,omitempty"`
	ResetInMs  int64         `json:"reset_in_ms,omitempty"`
	Labels     Labels        `json:"labels"`
}

// ScoreButton is one of the eleven NPS buttons.
type ScoreButton struct {
	rating.Position
	Class string `json:"class"`
}

type AspectView struct {
	Aspect models.Aspect     `json:"aspect"`
	Label  string            `json:"label"`
	Value  int               `json:"value"`
	Stars  []rating.Position `json:"stars"`
}

func (c *Controller) viewLocked() View {
	step := c.machine.Current()
	v := View{
		Version:    c.version,
		Session:    c.session,
		Step:       step,
		LocationID: c.cfg.LocationID,
		Score:      c.score,
		Comment:    c.comment,
		Busy:       c.busy,
		Labels:     c.labels,
	}

	// the hover preview wins over the committed score
	shown := c.scoreHover.Current()
	if shown == nil {
		shown = c.score
	}
	if shown != nil {
		v.Sentiment = Classify(*shown)
		v.Hue = v.Sentiment.Hue()
	}
	v.ScoreScale = scoreButtons(c.score, c.scoreHover.Current())

	if !c.cfg.SkipDetail {
		v.Ratings = make([]AspectView, 0, len(models.Aspects))
		for _, a := range models.Aspects {
			val := c.ratings[a]
			v.Ratings = append(v.Ratings, AspectView{
				Aspect: a,
				Label:  c.labels.Aspects[a],
				Value:  val,
				Stars:  rating.Render(rating.Stars, rating.Value(rating.Stars, val), c.ratingHover[a].Current()),
			})
		}
	}

	v.CanSubmit = c.score != nil && !c.busy && !c.closed && c.machine.Can(eventComplete)
	if c.lastErr != nil {
		v.Error = c.labels.SubmitError
	}
	if step == models.StepThanks && !c.thanksUntil.IsZero() {
		if left := c.thanksUntil.Sub(c.clock.Now()); left > 0 {
			v.ResetInMs = left.Milliseconds()
		}
	}
	return v
}

// scoreButtons colors each NPS button the way the kiosk shows them: the
// selected one in its sentiment color, the others dimmed, and hovered
// ones in the color of the hovered value.
func scoreButtons(score, hover *int) []ScoreButton {
	positions := rating.Render(rating.NPS, score, hover)
	buttons := make([]ScoreButton, len(positions))
	for i, p := range positions {
		b := ScoreButton{Position: p}
		switch {
		case hover != nil && p.Value == *hover:
			b.Class = "preview " + Classify(*hover).Class()
		case score != nil && p.Value == *score:
			b.Class = "selected " + Classify(*score).Class()
		case score != nil:
			b.Class = "dimmed"
		}
		buttons[i] = b
	}
	return buttons
}
