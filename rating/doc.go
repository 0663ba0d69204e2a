// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rating renders discrete rating scales.

# Scales

Two scales are used by the kiosk:

  - Stars: 1-5, one per detail aspect
  - NPS: 0-10, the segmented recommendation bar

# Rendering

Render is pure. The parent owns the committed value and the hover
preview; nothing is stored here:

	positions := rating.Render(rating.Stars, rating.Value(rating.Stars, 3), &hover)

Every position at or below max(value, hover) is Filled. The committed
position is Active, and filled positions past it are Preview.

# Committing

	v, err := rating.Commit(rating.Stars, clicked)

Commit rejects positions outside the scale with ErrOutOfRange. The
caller clears its Hover after a commit.
*/
package rating
