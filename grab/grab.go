// Package grab captures a live snapshot of the desktop or a single window
// at a configured rate and emits each snapshot as a byte-exact bitmap
// packet.
//
// A Session is single-threaded and pull-based: one goroutine runs
// Open → repeated Read/TryRead → Close. The only suspension point is the
// pacing sleep inside a blocking Read; TryRead returns ErrAgain instead of
// waiting. Session state, including its monitor registry, is private to the
// session, so independent sessions can coexist in one process.
package grab

import (
	"errors"

	"screengrab/pacer"
)

var (
	// ErrNotFound reports that the capture target could not be resolved.
	ErrNotFound = errors.New("grab: capture target not found")

	// ErrInvalidArea reports a requested capture rectangle outside the
	// target's bounds, with non-positive extents, or a bit depth that is
	// not byte-aligned.
	ErrInvalidArea = errors.New("grab: invalid capture area")
)

// ErrAgain is returned by TryRead when the next frame is not due yet. No
// frame was captured and no pacing state advanced.
var ErrAgain = pacer.ErrAgain
