// Package monitor enumerates attached displays and answers containment and
// DPI-scaling queries about them.
//
// Windows reports desktop geometry in logical coordinates: the numbers are
// pre-divided by each monitor's scale factor, and monitors with different
// scale factors disagree about how big a pixel is. A Registry records, per
// monitor, the logical bounding rectangle plus the logical and physical
// resolutions, so capture rectangles can be converted to real device pixels.
package monitor

import "image"

// Monitor describes one attached display.
type Monitor struct {
	// Bounds is the monitor rectangle in logical desktop coordinates.
	Bounds image.Rectangle
	// Logical is the resolution the OS reports at 96-DPI-equivalent scale.
	Logical image.Point
	// Physical is the resolution in actual device pixels.
	Physical image.Point
}

// Registry holds the monitors attached at enumeration time. A registry is
// built once per capture session and never refreshed; topology changes
// while a session is open are unsupported. Enumeration order is not stable
// across OS versions, so indexes carry no meaning beyond the session.
type Registry struct {
	monitors []Monitor
}

// NewRegistry builds a registry from an already collected monitor list.
func NewRegistry(monitors []Monitor) *Registry {
	return &Registry{monitors: monitors}
}

// All returns the enumerated monitors.
func (r *Registry) All() []Monitor { return r.monitors }

// ByPoint returns the monitor containing the logical point (x,y). Points in
// the gaps between monitor rectangles resolve to nothing.
func (r *Registry) ByPoint(x, y int) (Monitor, bool) {
	for _, m := range r.monitors {
		if m.Bounds.Min.X <= x && x < m.Bounds.Max.X &&
			m.Bounds.Min.Y <= y && y < m.Bounds.Max.Y {
			return m, true
		}
	}
	return Monitor{}, false
}

// ByRect returns the monitor containing the center of rect.
func (r *Registry) ByRect(rect image.Rectangle) (Monitor, bool) {
	return r.ByPoint(rect.Min.X+rect.Dx()/2, rect.Min.Y+rect.Dy()/2)
}

// ByX searches the horizontal axis only. Used as a fallback when a point
// sits on a seam between monitors and ByPoint finds nothing.
func (r *Registry) ByX(x int) (Monitor, bool) {
	for _, m := range r.monitors {
		if m.Bounds.Min.X <= x && x < m.Bounds.Max.X {
			return m, true
		}
	}
	return Monitor{}, false
}

// ByY searches the vertical axis only.
func (r *Registry) ByY(y int) (Monitor, bool) {
	for _, m := range r.monitors {
		if m.Bounds.Min.Y <= y && y < m.Bounds.Max.Y {
			return m, true
		}
	}
	return Monitor{}, false
}
