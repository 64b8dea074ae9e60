//go:build !windows

package monitor

import (
	"image"

	"github.com/kbinani/screenshot"
)

// Enumerate queries the attached displays through the portable screenshot
// library. Per-monitor scale factors are not exposed on this path, so each
// monitor reports its bounds as both logical and physical resolution
// (identity DPI).
func Enumerate() *Registry {
	n := screenshot.NumActiveDisplays()
	monitors := make([]Monitor, 0, n)
	for i := 0; i < n; i++ {
		b := screenshot.GetDisplayBounds(i)
		size := image.Pt(b.Dx(), b.Dy())
		monitors = append(monitors, Monitor{Bounds: b, Logical: size, Physical: size})
	}
	return NewRegistry(monitors)
}
