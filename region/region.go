// Package region shows an always-on-top border window outlining the
// capture area during desktop grabs.
package region

import (
	"errors"
	"image"
)

// BorderWidth is the thickness in pixels of one border band. The window
// encloses the capture rectangle expanded outward by this much.
const BorderWidth = 3

// ErrUnsupported reports that this platform has no indicator window.
var ErrUnsupported = errors.New("region: indicator window not supported on this platform")

// Window is a topmost, input-transparent border drawn around a capture
// rectangle. It has no thread of its own: the owner must call Pump
// cooperatively, once per capture tick.
type Window interface {
	// Pump drains pending UI events without ever blocking, so the OS does
	// not consider the window unresponsive and paint requests get
	// serviced.
	Pump()
	// Close destroys the window. Idempotent.
	Close() error
}

// New creates the indicator window around the given physical clip
// rectangle.
func New(clip image.Rectangle) (Window, error) {
	return newWindow(clip)
}
