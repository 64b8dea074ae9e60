package grab

import (
	"fmt"
	"image"
	"log"

	"screengrab/bmp"
	"screengrab/monitor"
	"screengrab/pacer"
	"screengrab/region"
)

// Session is an open capture of one target. Not safe for concurrent use.
type Session struct {
	target  Target
	opts    Options
	surface Surface
	reg     *monitor.Registry
	clock   *pacer.Pacer

	clip image.Rectangle
	dib  bmp.DIB

	indicator region.Window
	newPacket func(int) []byte

	cursorErrLogged bool
	closed          bool
}

// Packet is one serialized frame: bitmap headers, optional palette, and
// raw pixels. PTS is in microseconds and monotonically increasing.
// Ownership of Data transfers to the caller; the session keeps no
// reference.
type Packet struct {
	Data []byte
	PTS  int64
}

// Open resolves the target spec ("desktop" or "title=<window name>"),
// enumerates monitors, computes the physical clip rectangle, and allocates
// the back buffer. On any failure every resource acquired so far is
// released.
func Open(spec string, opts Options) (*Session, error) {
	target, err := ParseTarget(spec)
	if err != nil {
		return nil, err
	}
	surface, err := newSurface(target)
	if err != nil {
		return nil, err
	}
	s, err := open(target, opts, surface, monitor.Enumerate(), region.New)
	if err != nil {
		surface.Close()
		return nil, err
	}
	return s, nil
}

// open is the platform-free part of Open, split out so tests can inject a
// fake surface, registry, and indicator constructor.
func open(target Target, opts Options, surface Surface, reg *monitor.Registry,
	newRegion func(image.Rectangle) (region.Window, error)) (*Session, error) {

	if opts.Framerate == (pacer.Rate{}) {
		opts.Framerate = pacer.NTSC
	}
	if !opts.Framerate.Valid() {
		return nil, fmt.Errorf("grab: invalid frame rate %s", opts.Framerate)
	}
	if opts.ShowRegion && !target.Desktop() {
		// Window capture and the region border are mutually exclusive;
		// downgrade and keep going.
		log.Printf("grab: can't show region when grabbing a window, disabling")
		opts.ShowRegion = false
	}
	if opts.NewPacket == nil {
		opts.NewPacket = func(size int) []byte { return make([]byte, size) }
	}

	for i, m := range reg.All() {
		log.Printf("grab: monitor %d %v logical %dx%d physical %dx%d",
			i, m.Bounds, m.Logical.X, m.Logical.Y, m.Physical.X, m.Physical.Y)
	}

	bpp := surface.BitsPerPixel()

	virtual, err := surface.ClientBounds()
	if err != nil {
		return nil, fmt.Errorf("grab: couldn't get target bounds: %w", err)
	}
	if target.Desktop() {
		virtual = reg.ToPhysical(virtual)
	} else if outer, ok := surface.WindowBounds(); ok {
		// The whole window sits on one monitor as far as scaling is
		// concerned; resolve it from the outer rectangle and scale the
		// client rectangle by that monitor's ratios.
		if m, found := reg.ByRect(outer); found {
			virtual = monitor.ScaleRect(m, virtual)
		}
	}

	clip := virtual
	if opts.Width > 0 && opts.Height > 0 {
		// Explicit sizes and offsets are raw physical pixels: no DPI
		// conversion applies here, only to the full-area default above.
		clip = image.Rect(opts.OffsetX, opts.OffsetY,
			opts.OffsetX+opts.Width, opts.OffsetY+opts.Height)
	}

	if clip.Min.X < virtual.Min.X || clip.Min.Y < virtual.Min.Y ||
		clip.Max.X > virtual.Max.X || clip.Max.Y > virtual.Max.Y {
		return nil, fmt.Errorf("%w: capture area (%d,%d),(%d,%d) extends outside target area (%d,%d),(%d,%d)",
			ErrInvalidArea,
			clip.Min.X, clip.Min.Y, clip.Max.X, clip.Max.Y,
			virtual.Min.X, virtual.Min.Y, virtual.Max.X, virtual.Max.Y)
	}
	if clip.Dx() <= 0 || clip.Dy() <= 0 || bpp%8 != 0 {
		return nil, fmt.Errorf("%w: %dx%d at %d bpp", ErrInvalidArea, clip.Dx(), clip.Dy(), bpp)
	}

	dib := bmp.DIB{Width: clip.Dx(), Height: clip.Dy(), BitCount: bpp}

	frameSize, err := surface.Allocate(clip)
	if err != nil {
		return nil, fmt.Errorf("grab: couldn't allocate frame buffer: %w", err)
	}
	if frameSize != dib.FrameSize() {
		return nil, fmt.Errorf("grab: back buffer is %d bytes, geometry needs %d", frameSize, dib.FrameSize())
	}

	s := &Session{
		target:    target,
		opts:      opts,
		surface:   surface,
		reg:       reg,
		clock:     pacer.New(opts.Framerate),
		clip:      clip,
		dib:       dib,
		newPacket: opts.NewPacket,
	}

	if opts.ShowRegion {
		s.indicator, err = newRegion(clip)
		if err != nil {
			s.surface = nil // caller still owns it on failure
			s.Close()
			return nil, err
		}
	}

	if target.Desktop() {
		log.Printf("grab: capturing whole desktop as %dx%dx%d at (%d,%d)",
			clip.Dx(), clip.Dy(), bpp, clip.Min.X, clip.Min.Y)
	} else {
		log.Printf("grab: found window %q, capturing %dx%dx%d at (%d,%d)",
			target.Title, clip.Dx(), clip.Dy(), bpp, clip.Min.X, clip.Min.Y)
	}

	return s, nil
}

// ClipBounds returns the physical-pixel rectangle captured each frame.
func (s *Session) ClipBounds() image.Rectangle { return s.clip }

// HeaderSize is the byte length of the bitmap headers plus palette. Fixed
// at open.
func (s *Session) HeaderSize() int { return s.dib.HeaderSize() }

// FrameSize is the byte length of the raw pixel data. Fixed at open.
func (s *Session) FrameSize() int { return s.dib.FrameSize() }

// PacketSize is HeaderSize + FrameSize, the exact length of every packet.
func (s *Session) PacketSize() int { return s.dib.PacketSize() }

// Close releases the indicator window and drawing surfaces in reverse
// acquisition order. It is idempotent and safe on partially constructed
// sessions, including after a failed Open.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	if s.indicator != nil {
		s.indicator.Close()
		s.indicator = nil
	}
	if s.surface != nil {
		s.surface.Close()
		s.surface = nil
	}
	return nil
}
