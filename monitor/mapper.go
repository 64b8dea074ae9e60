package monitor

import "image"

// PhysicalX scales a logical x coordinate by m's horizontal resolution
// ratio. The zero Monitor scales by identity, which is what degraded-mode
// lookups fall back to.
func PhysicalX(m Monitor, v int) int {
	if m.Logical.X <= 0 {
		return v
	}
	return v * m.Physical.X / m.Logical.X
}

// PhysicalY scales a logical y coordinate by m's vertical resolution ratio.
func PhysicalY(m Monitor, v int) int {
	if m.Logical.Y <= 0 {
		return v
	}
	return v * m.Physical.Y / m.Logical.Y
}

// ScaleRect converts rect from logical to physical coordinates using a
// single monitor's ratios for all four edges.
func ScaleRect(m Monitor, rect image.Rectangle) image.Rectangle {
	return image.Rect(
		PhysicalX(m, rect.Min.X), PhysicalY(m, rect.Min.Y),
		PhysicalX(m, rect.Max.X), PhysicalY(m, rect.Max.Y),
	)
}

// ToPhysical converts rect from logical to physical pixel coordinates.
//
// Each corner is resolved to a monitor independently, so a rectangle
// spanning monitors with different scale factors still converts; the x and
// y axes may even resolve to two different monitors when a corner lands on
// a seam. The cost is a possible off-by-one-pixel seam at monitor
// boundaries, which is accepted.
func (r *Registry) ToPhysical(rect image.Rectangle) image.Rectangle {
	var out image.Rectangle

	mx, my := r.resolve(rect.Min.X, rect.Min.Y)
	out.Min.X = PhysicalX(mx, rect.Min.X)
	out.Min.Y = PhysicalY(my, rect.Min.Y)

	// Max is exclusive; look up the last pixel actually inside the
	// rectangle so the query does not land one past the monitor edge.
	mx, my = r.resolve(rect.Max.X-1, rect.Max.Y-1)
	out.Max.X = PhysicalX(mx, rect.Max.X)
	out.Max.Y = PhysicalY(my, rect.Max.Y)

	return out
}

// resolve finds the monitors governing the x and y scale at a point. An
// exact hit governs both axes; otherwise each axis is searched on its own,
// and an axis with no monitor at all yields the zero Monitor (identity
// scale).
func (r *Registry) resolve(x, y int) (mx, my Monitor) {
	if m, ok := r.ByPoint(x, y); ok {
		return m, m
	}
	mx, _ = r.ByX(x)
	my, _ = r.ByY(y)
	return mx, my
}
