// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey runs the kiosk NPS flow.

# Steps

	scoring --(score + transition delay)--> detail --(submit ok)--> thanks
	   ^                                                              |
	   +------------------------(thanks delay)------------------------+

With Config.SkipDetail the detail step is never shown: the score is
submitted as soon as the transition delay passes, and a failed
submission stays in scoring until the guest picks a score again or
Submit is called.

# Usage

	ctrl := survey.New(survey.Config{
		LocationID:      "Squash",
		TransitionDelay: 400 * time.Millisecond,
		ThanksDelay:     5 * time.Second,
	}, client)
	defer ctrl.Close()

	ctrl.SelectScore(ctx, 9)
	ctrl.SetRating(models.AspectCleanliness, 4)
	ctrl.SetComment("Muy limpio")
	err := ctrl.Submit(ctx)

# Rules

  - Only one submission may be outstanding; the rest get
    ErrSubmissionInFlight and no second insert is made.
  - A failed submission keeps the step and everything entered.
  - Reselecting a score before the transition restarts the one pending
    transition; it never stacks.
  - Close, Reset and a new flow cancel every pending timer, and a timer
    that fires after being superseded is ignored.

Sentiment, color and button classes are derived in View on every call.
Subscribe delivers each new View, tagged with a monotonically increasing
Version, to the stream hub.
*/
package survey
