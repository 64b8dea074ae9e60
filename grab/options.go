package grab

import "screengrab/pacer"

// Options configure a capture session. The zero value of Framerate means
// the NTSC default; everything else is taken literally.
type Options struct {
	// DrawMouse composites the system pointer into each frame.
	DrawMouse bool

	// ShowRegion outlines the capture area with an always-on-top border
	// window. Desktop targets only; for window targets it is disabled with
	// a warning.
	ShowRegion bool

	// Framerate paces frame emission.
	Framerate pacer.Rate

	// Width and Height request an explicit capture size. The values are
	// raw physical pixels and bypass DPI conversion entirely, unlike the
	// full-area default which is converted from logical coordinates. This
	// asymmetry is deliberate and preserved. Zero means the full target
	// area.
	Width  int
	Height int

	// OffsetX and OffsetY position the explicit capture area, again in
	// raw physical pixels. Meaningful only when Width and Height are set.
	OffsetX int
	OffsetY int

	// NewPacket allocates packet buffers, so an embedding host can supply
	// its own allocator. nil means plain make.
	NewPacket func(size int) []byte
}

// DefaultOptions returns the option defaults: pointer drawn, no region
// border, NTSC rate, full target area.
func DefaultOptions() Options {
	return Options{
		DrawMouse: true,
		Framerate: pacer.NTSC,
	}
}
