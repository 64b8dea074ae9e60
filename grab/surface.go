package grab

import "image"

// CursorState describes the system pointer at one instant.
type CursorState struct {
	// Showing is false when the pointer is hidden; nothing should be
	// drawn then.
	Showing bool
	// Pos is the pointer position on screen, in logical coordinates.
	Pos image.Point
	// Hotspot is the offset of the pointer's active pixel within its
	// image.
	Hotspot image.Point
}

// Surface abstracts the OS drawing stack behind a session: the capture
// source, the device-compatible back buffer, and pointer imagery.
// Implementations own every OS handle involved; Close releases them all
// and must be idempotent and safe on partially initialized state.
type Surface interface {
	// BitsPerPixel reports the source's bit depth.
	BitsPerPixel() int

	// ClientBounds returns the target's own bounds in logical
	// coordinates: the window client rectangle, or the whole virtual
	// desktop.
	ClientBounds() (image.Rectangle, error)

	// WindowBounds returns the outer window rectangle for window targets.
	// ok is false for desktop targets or when the rectangle cannot be
	// fetched.
	WindowBounds() (bounds image.Rectangle, ok bool)

	// Allocate creates the back buffer for the given physical clip
	// rectangle and returns its byte size. Called exactly once, at open.
	Allocate(clip image.Rectangle) (frameSize int, err error)

	// Capture copies the clip rectangle from the source into the back
	// buffer, including layered and always-on-top content. A failure here
	// is fatal to the session.
	Capture(clip image.Rectangle) error

	// Pixels exposes the back buffer: stride × height bytes in top-down
	// row order. Valid until Close.
	Pixels() []byte

	// Palette returns the 4-byte color table entries for bit depths of 8
	// or less, nil otherwise.
	Palette() []byte

	// Cursor snapshots the current pointer state. A successful call with
	// Showing set keeps the pointer image around for one subsequent
	// DrawCursor.
	Cursor() (CursorState, error)

	// DrawCursor composites the previously snapshotted pointer image at
	// pt, in back-buffer coordinates.
	DrawCursor(pt image.Point) error

	// Close releases the back buffer and all source handles.
	Close() error
}
