// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rating

import (
	"errors"
	"fmt"
)

var ErrOutOfRange = errors.New("position out of range")

// Scale is an inclusive range of discrete positions.
type Scale struct {
	Min int
	Max int
}

var (
	// Stars is the 1-5 star rating used for the detail aspects.
	Stars = Scale{Min: 1, Max: 5}
	// NPS is the 0-10 segmented bar.
	NPS = Scale{Min: 0, Max: 10}
)

// Len returns the number of positions on the scale
func (s Scale) Len() int {
	return s.Max - s.Min + 1
}

// Contains reports whether p is a position on the scale
func (s Scale) Contains(p int) bool {
	return p >= s.Min && p <= s.Max
}

// Position is one rendered slot of a scale.
type Position struct {
	Value   int  `json:"value"`
	Filled  bool `json:"filled"`
	Active  bool `json:"active"`
	Preview bool `json:"preview"`
}

// Value converts a stored int into an optional committed value.
// Values outside the scale (0 stars) mean nothing is committed.
func Value(s Scale, v int) *int {
	if !s.Contains(v) {
		return nil
	}
	return &v
}

// Render lays out every position of the scale. A position is filled
// when it is at or below max(value, hover); the committed value is
// Active; positions filled only by the hover are Preview.
func Render(s Scale, value, hover *int) []Position {
	top := s.Min - 1
	if value != nil && *value > top {
		top = *value
	}
	if hover != nil && *hover > top {
		top = *hover
	}

	out := make([]Position, 0, s.Len())
	for p := s.Min; p <= s.Max; p++ {
		pos := Position{Value: p, Filled: p <= top}
		if value != nil && p == *value {
			pos.Active = true
		}
		if pos.Filled && (value == nil || p > *value) {
			pos.Preview = true
		}
		out = append(out, pos)
	}
	return out
}

// Commit validates a clicked position and returns it as the new value
func Commit(s Scale, p int) (int, error) {
	if !s.Contains(p) {
		return 0, fmt.Errorf("%w: %d not in [%d,%d]", ErrOutOfRange, p, s.Min, s.Max)
	}
	return p, nil
}

// Hover tracks the transient pointer preview over a scale. The zero
// value has no preview.
type Hover struct {
	value *int
}

// Enter starts previewing position p
func (h *Hover) Enter(s Scale, p int) error {
	if !s.Contains(p) {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrOutOfRange, p, s.Min, s.Max)
	}
	h.value = &p
	return nil
}

// Leave clears the preview
func (h *Hover) Leave() {
	h.value = nil
}

// Current returns the previewed position or nil
func (h Hover) Current() *int {
	if h.value == nil {
		return nil
	}
	v := *h.value
	return &v
}
