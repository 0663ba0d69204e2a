// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"github.com/danielhkuo/quickly-rate/models"
	"github.com/danielhkuo/quickly-rate/rating"
	"github.com/danielhkuo/quickly-rate/submission"
)

var (
	ErrInvalidScore       = errors.New("score must be between 0 and 10")
	ErrUnknownAspect      = errors.New("unknown rating aspect")
	ErrWrongStep          = errors.New("not allowed in the current step")
	ErrScoreRequired      = errors.New("a score is required before submitting")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrClosed             = errors.New("survey controller closed")
)

// FSM events
const (
	eventAdvance  = "advance"
	eventComplete = "complete"
	eventReset    = "reset"
)

type timerPurpose int

const (
	timerAdvance timerPurpose = iota
	timerReset
)

type Config struct {
	LocationID string
	// SkipDetail submits right after the score, without the detail step.
	SkipDetail      bool
	TransitionDelay time.Duration
	ThanksDelay     time.Duration
	// SubmitTimeout bounds each insert; 0 means no extra deadline.
	SubmitTimeout time.Duration
	Locale        string
}

type Option func(*Controller)

// WithClock replaces the wall clock, mainly for tests
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) {
		c.clock = clk
	}
}

// Stats are the running counters since process start.
type Stats struct {
	Submitted       int
	Failed          int
	LastSubmittedAt time.Time
	StartedAt       time.Time
}

// Controller owns the kiosk survey flow. Every input event and timer
// firing is applied under one mutex, so the form state is only ever
// mutated by one event at a time.
type Controller struct {
	cfg    Config
	client submission.Client
	clock  clock.Clock
	labels Labels

	mu          sync.Mutex
	machine     *fsm.FSM
	score       *int
	comment     string
	ratings     models.Ratings
	scoreHover  rating.Hover
	ratingHover map[models.Aspect]*rating.Hover
	busy        bool
	lastErr     error
	session     string
	timers      map[timerPurpose]*clock.Timer
	thanksUntil time.Time
	closed      bool
	version     uint64
	stats       Stats

	subMu   sync.Mutex
	subs    map[int]func(View)
	nextSub int
}

// New builds a controller in the initial scoring step.
func New(cfg Config, client submission.Client, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		client: client,
		clock:  clock.New(),
		labels: LabelsFor(cfg.Locale, cfg.LocationID),
		timers: make(map[timerPurpose]*clock.Timer),
		subs:   make(map[int]func(View)),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.machine = newMachine(cfg.SkipDetail)
	c.clearFormLocked()
	c.stats.StartedAt = c.clock.Now()
	return c
}

func newMachine(skipDetail bool) *fsm.FSM {
	completeFrom := []string{models.StepDetail}
	if skipDetail {
		completeFrom = []string{models.StepScoring}
	}

	return fsm.NewFSM(
		models.StepScoring,
		fsm.Events{
			{Name: eventAdvance, Src: []string{models.StepScoring}, Dst: models.StepDetail},
			{Name: eventComplete, Src: completeFrom, Dst: models.StepThanks},
			{Name: eventReset, Src: []string{models.StepDetail, models.StepThanks}, Dst: models.StepScoring},
		},
		fsm.Callbacks{},
	)
}

// SelectScore records the NPS answer and schedules the move to the next
// step. Selecting again before the move restarts the one pending move.
func (c *Controller) SelectScore(ctx context.Context, score int) error {
	if score < models.MinScore || score > models.MaxScore {
		return fmt.Errorf("%w: got %d", ErrInvalidScore, score)
	}

	c.mu.Lock()
	if err := c.checkLocked(models.StepScoring); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.busy {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}

	c.score = &score
	c.scoreHover.Leave()
	c.lastErr = nil

	if c.cfg.TransitionDelay > 0 {
		c.schedule(timerAdvance, c.cfg.TransitionDelay, func() {
			if err := c.advance(context.Background()); err != nil {
				slog.Debug("delayed advance failed", "error", err)
			}
		})
		c.unlockAndNotify()
		return nil
	}

	c.cancel(timerAdvance)
	c.unlockAndNotify()
	return c.advance(ctx)
}

// advance leaves the scoring step: to detail, or straight to submission
// when the detail step is disabled.
func (c *Controller) advance(ctx context.Context) error {
	c.mu.Lock()
	if c.closed || c.machine.Current() != models.StepScoring || c.score == nil {
		c.mu.Unlock()
		return nil
	}

	if c.cfg.SkipDetail {
		c.mu.Unlock()
		return c.Submit(ctx)
	}

	if err := c.fire(eventAdvance); err != nil {
		c.mu.Unlock()
		return err
	}
	c.unlockAndNotify()
	return nil
}

// HoverScore previews a score; nil clears the preview
func (c *Controller) HoverScore(h *int) error {
	c.mu.Lock()
	if err := c.checkLocked(models.StepScoring); err != nil {
		c.mu.Unlock()
		return err
	}
	if h == nil {
		c.scoreHover.Leave()
	} else if err := c.scoreHover.Enter(rating.NPS, *h); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrInvalidScore, err)
	}
	c.unlockAndNotify()
	return nil
}

// SetRating stores a clamped 0-5 star value for aspect
func (c *Controller) SetRating(aspect models.Aspect, value int) error {
	if !models.IsAspect(aspect) {
		return fmt.Errorf("%w: %q", ErrUnknownAspect, aspect)
	}

	c.mu.Lock()
	if err := c.checkDetailEditLocked(); err != nil {
		c.mu.Unlock()
		return err
	}

	c.ratings.Set(aspect, value)
	c.ratingHover[aspect].Leave()
	c.lastErr = nil
	c.unlockAndNotify()
	return nil
}

// HoverRating previews a star value; nil clears the preview
func (c *Controller) HoverRating(aspect models.Aspect, h *int) error {
	if !models.IsAspect(aspect) {
		return fmt.Errorf("%w: %q", ErrUnknownAspect, aspect)
	}

	c.mu.Lock()
	if err := c.checkLocked(models.StepDetail); err != nil {
		c.mu.Unlock()
		return err
	}
	if h == nil {
		c.ratingHover[aspect].Leave()
	} else if err := c.ratingHover[aspect].Enter(rating.Stars, *h); err != nil {
		c.mu.Unlock()
		return err
	}
	c.unlockAndNotify()
	return nil
}

func (c *Controller) SetComment(text string) error {
	c.mu.Lock()
	if err := c.checkDetailEditLocked(); err != nil {
		c.mu.Unlock()
		return err
	}

	c.comment = text
	c.lastErr = nil
	c.unlockAndNotify()
	return nil
}

// Submit sends the assembled response once. While the insert is
// outstanding further calls fail with ErrSubmissionInFlight. On failure
// the step and the entered data are kept for a manual retry.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	step := c.machine.Current()
	if !c.machine.Can(eventComplete) {
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot submit from %s", ErrWrongStep, step)
	}
	if c.busy {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if c.score == nil {
		c.mu.Unlock()
		return ErrScoreRequired
	}

	c.cancel(timerAdvance)
	resp := c.responseLocked()
	session := c.session
	c.busy = true
	c.lastErr = nil
	c.unlockAndNotify()

	if c.cfg.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.SubmitTimeout)
		defer cancel()
	}
	err := c.client.Insert(ctx, resp)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		err = submission.Wrap("submission", err)
		c.lastErr = err
		c.stats.Failed++
		slog.Warn("survey submission failed",
			"location_id", resp.LocationID,
			"session", session,
			"error", err,
		)
		c.unlockAndNotify()
		return err
	}

	c.stats.Submitted++
	c.stats.LastSubmittedAt = c.clock.Now()
	slog.Info("survey submitted",
		"location_id", resp.LocationID,
		"session", session,
		"score", resp.Score,
		"sentiment", Classify(resp.Score),
	)

	if c.closed {
		c.mu.Unlock()
		return nil
	}
	if err := c.fire(eventComplete); err != nil {
		c.mu.Unlock()
		return err
	}
	c.thanksUntil = c.clock.Now().Add(c.cfg.ThanksDelay)
	c.schedule(timerReset, c.cfg.ThanksDelay, c.resetAfterThanks)
	c.unlockAndNotify()
	return nil
}

func (c *Controller) resetAfterThanks() {
	c.mu.Lock()
	if c.closed || c.machine.Current() != models.StepThanks {
		c.mu.Unlock()
		return
	}
	if err := c.resetLocked(); err != nil {
		c.mu.Unlock()
		slog.Error("thanks reset failed", "error", err)
		return
	}
	c.unlockAndNotify()
}

// Reset abandons the current flow and starts a fresh one
func (c *Controller) Reset() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.busy {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}
	if err := c.resetLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.unlockAndNotify()
	return nil
}

// Close cancels every pending timer. The controller is unusable after.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	for p := range c.timers {
		c.cancel(p)
	}
	c.mu.Unlock()

	c.subMu.Lock()
	c.subs = make(map[int]func(View))
	c.subMu.Unlock()
}

// View returns the presentational snapshot of the current state
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Subscribe registers fn to receive every new view. Calls happen outside
// the controller lock; compare View.Version to drop stale ones.
func (c *Controller) Subscribe(fn func(View)) (unsubscribe func()) {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Controller) notify(v View) {
	c.subMu.Lock()
	fns := make([]func(View), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// unlockAndNotify bumps the version, releases mu and publishes the view.
func (c *Controller) unlockAndNotify() {
	c.version++
	v := c.viewLocked()
	c.mu.Unlock()
	c.notify(v)
}

func (c *Controller) checkLocked(step string) error {
	if c.closed {
		return ErrClosed
	}
	if current := c.machine.Current(); current != step {
		return fmt.Errorf("%w: in %s", ErrWrongStep, current)
	}
	return nil
}

func (c *Controller) checkDetailEditLocked() error {
	if err := c.checkLocked(models.StepDetail); err != nil {
		return err
	}
	if c.busy {
		return ErrSubmissionInFlight
	}
	return nil
}

func (c *Controller) fire(event string) error {
	if err := c.machine.Event(context.Background(), event); err != nil {
		return fmt.Errorf("%w: %v", ErrWrongStep, err)
	}
	return nil
}

func (c *Controller) responseLocked() models.SurveyResponse {
	resp := models.SurveyResponse{
		Score:      *c.score,
		Comment:    c.comment,
		LocationID: c.cfg.LocationID,
	}
	if !c.cfg.SkipDetail {
		resp.AdditionalRatings = c.ratings.Clone()
	}
	return resp
}

// resetLocked cancels timers, moves back to scoring and clears the form.
// Resetting while already in scoring only clears the form.
func (c *Controller) resetLocked() error {
	for p := range c.timers {
		c.cancel(p)
	}
	if c.machine.Current() != models.StepScoring {
		if err := c.fire(eventReset); err != nil {
			return err
		}
	}
	c.clearFormLocked()
	return nil
}

func (c *Controller) clearFormLocked() {
	c.score = nil
	c.comment = ""
	c.ratings = models.NewRatings()
	c.scoreHover.Leave()
	c.ratingHover = make(map[models.Aspect]*rating.Hover, len(models.Aspects))
	for _, a := range models.Aspects {
		c.ratingHover[a] = &rating.Hover{}
	}
	c.lastErr = nil
	c.thanksUntil = time.Time{}
	c.session = uuid.NewString()
}

// schedule starts fn after d, replacing any pending timer of the same
// purpose. A superseded timer that fires anyway does nothing. mu held.
func (c *Controller) schedule(p timerPurpose, d time.Duration, fn func()) {
	c.cancel(p)

	var t *clock.Timer
	t = c.clock.AfterFunc(d, func() {
		c.mu.Lock()
		if c.timers[p] != t {
			c.mu.Unlock()
			return
		}
		delete(c.timers, p)
		c.mu.Unlock()
		fn()
	})
	c.timers[p] = t
}

// cancel stops the pending timer of purpose p. mu held.
func (c *Controller) cancel(p timerPurpose) {
	if t, ok := c.timers[p]; ok {
		t.Stop()
		delete(c.timers, p)
	}
}
