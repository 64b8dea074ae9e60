package grab

import (
	"fmt"
	"image"
	"log"

	"screengrab/monitor"
)

// Read blocks until the next frame is due, captures it, and returns the
// serialized packet. A capture failure is fatal: the caller must stop
// reading and close the session.
func (s *Session) Read() (Packet, error) {
	return s.read(true)
}

// TryRead is the non-blocking variant. When no frame is due yet it returns
// ErrAgain immediately, with no state mutated.
func (s *Session) TryRead() (Packet, error) {
	return s.read(false)
}

func (s *Session) read(block bool) (Packet, error) {
	if s.closed {
		return Packet{}, fmt.Errorf("grab: session is closed")
	}

	// Keep the indicator window responsive and painted. This runs inline
	// on the capture thread and never blocks.
	if s.indicator != nil {
		s.indicator.Pump()
	}

	var pts int64
	if block {
		pts = s.clock.Next()
	} else {
		var err error
		if pts, err = s.clock.TryNext(); err != nil {
			return Packet{}, err
		}
	}

	if err := s.surface.Capture(s.clip); err != nil {
		return Packet{}, fmt.Errorf("grab: failed to capture image: %w", err)
	}
	if s.opts.DrawMouse {
		s.paintCursor()
	}

	data := s.newPacket(s.dib.PacketSize())
	if err := s.dib.Assemble(data, s.surface.Palette(), s.surface.Pixels()); err != nil {
		return Packet{}, err
	}
	return Packet{Data: data, PTS: pts}, nil
}

// paintCursor composites the system pointer into the back buffer. The draw
// position is the pointer's screen position less the capture origin and
// hotspot, shifted by the window origin for window targets, and scaled by
// the resolution ratio of the monitor under the pointer so hidpi screens
// keep it placed correctly. Failures degrade: they are logged once per
// session and never abort the frame.
func (s *Session) paintCursor() {
	state, err := s.surface.Cursor()
	if err != nil {
		s.cursorError("could not get cursor info", err)
		return
	}
	if !state.Showing {
		return
	}

	mx, my := s.pointerMonitor(state.Pos)

	var pos image.Point
	if s.target.Desktop() {
		pos.X = monitor.PhysicalX(mx, state.Pos.X) - s.clip.Min.X - state.Hotspot.X
		pos.Y = monitor.PhysicalY(my, state.Pos.Y) - s.clip.Min.Y - state.Hotspot.Y
	} else {
		outer, ok := s.surface.WindowBounds()
		if !ok {
			s.cursorError("couldn't get window rectangle", nil)
			return
		}
		pos.X = monitor.PhysicalX(mx, state.Pos.X-s.clip.Min.X-state.Hotspot.X-outer.Min.X)
		pos.Y = monitor.PhysicalY(my, state.Pos.Y-s.clip.Min.Y-state.Hotspot.Y-outer.Min.Y)
	}

	// Draw only when the pointer's top-left lands inside the buffer.
	// Partially off-buffer pointers near the far edges are an accepted
	// approximation.
	if pos.X < 0 || pos.X > s.clip.Dx() || pos.Y < 0 || pos.Y > s.clip.Dy() {
		return
	}
	if err := s.surface.DrawCursor(pos); err != nil {
		s.cursorError("couldn't draw icon", err)
	}
}

// pointerMonitor resolves the monitor(s) governing pointer scaling, with
// the same per-axis fallback the coordinate mapper uses.
func (s *Session) pointerMonitor(p image.Point) (mx, my monitor.Monitor) {
	if m, ok := s.reg.ByPoint(p.X, p.Y); ok {
		return m, m
	}
	mx, _ = s.reg.ByX(p.X)
	my, _ = s.reg.ByY(p.Y)
	return mx, my
}

// cursorError logs a pointer-compositing failure once per session; after
// that it stays quiet so a persistent failure can't flood the log at frame
// rate.
func (s *Session) cursorError(msg string, err error) {
	if s.cursorErrLogged {
		return
	}
	s.cursorErrLogged = true
	if err != nil {
		log.Printf("grab: %s: %v", msg, err)
	} else {
		log.Printf("grab: %s", msg)
	}
}
