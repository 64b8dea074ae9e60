package monitor

import (
	"image"
	"testing"
)

// Two monitors side by side: a 1920x1080 primary at 100% scale and a
// 1280x720 logical secondary rendering at 150% (1920x1080 physical).
func testRegistry() *Registry {
	return NewRegistry([]Monitor{
		{
			Bounds:   image.Rect(0, 0, 1920, 1080),
			Logical:  image.Pt(1920, 1080),
			Physical: image.Pt(1920, 1080),
		},
		{
			Bounds:   image.Rect(1920, 0, 3200, 720),
			Logical:  image.Pt(1280, 720),
			Physical: image.Pt(1920, 1080),
		},
	})
}

func TestByPoint(t *testing.T) {
	reg := testRegistry()

	if m, ok := reg.ByPoint(0, 0); !ok || m.Bounds.Min.X != 0 {
		t.Fatalf("ByPoint(0,0) = %v, %v; want primary", m, ok)
	}
	if m, ok := reg.ByPoint(1920, 100); !ok || m.Bounds.Min.X != 1920 {
		t.Fatalf("ByPoint(1920,100) = %v, %v; want secondary", m, ok)
	}
	// Right edges are exclusive.
	if _, ok := reg.ByPoint(3200, 100); ok {
		t.Fatal("ByPoint(3200,100) should be outside all monitors")
	}
	// A point below the shorter secondary falls in a gap.
	if _, ok := reg.ByPoint(2000, 900); ok {
		t.Fatal("ByPoint(2000,900) should fall in the gap below the secondary")
	}
}

func TestByRectUsesCenter(t *testing.T) {
	reg := testRegistry()

	if m, ok := reg.ByRect(image.Rect(1800, 0, 2200, 400)); !ok || m.Bounds.Min.X != 1920 {
		t.Fatalf("center at x=2000 should resolve the secondary, got %v, %v", m, ok)
	}
}

func TestAxisLookups(t *testing.T) {
	reg := testRegistry()

	// The gap point fails exact lookup but both axes resolve on their own.
	if _, ok := reg.ByPoint(2000, 900); ok {
		t.Fatal("precondition: gap point must not resolve exactly")
	}
	if m, ok := reg.ByX(2000); !ok || m.Bounds.Min.X != 1920 {
		t.Fatalf("ByX(2000) = %v, %v; want secondary", m, ok)
	}
	if m, ok := reg.ByY(900); !ok || m.Bounds.Min.X != 0 {
		t.Fatalf("ByY(900) = %v, %v; want primary", m, ok)
	}
}

func TestEmptyRegistry(t *testing.T) {
	reg := NewRegistry(nil)

	if _, ok := reg.ByPoint(0, 0); ok {
		t.Fatal("empty registry must not resolve points")
	}
	// Degraded mode: conversion is identity instead of crashing.
	rect := image.Rect(10, 20, 110, 70)
	if got := reg.ToPhysical(rect); got != rect {
		t.Fatalf("ToPhysical on empty registry = %v, want identity %v", got, rect)
	}
}

func TestToPhysicalSingleMonitor(t *testing.T) {
	reg := NewRegistry([]Monitor{{
		Bounds:   image.Rect(0, 0, 1280, 720),
		Logical:  image.Pt(1280, 720),
		Physical: image.Pt(1920, 1080),
	}})

	got := reg.ToPhysical(image.Rect(0, 0, 1280, 720))
	want := image.Rect(0, 0, 1920, 1080)
	if got != want {
		t.Fatalf("ToPhysical = %v, want %v", got, want)
	}
}

func TestToPhysicalSpanningMonitors(t *testing.T) {
	reg := testRegistry()

	// Top-left on the unscaled primary, bottom-right on the 150%
	// secondary: each corner scales by its own monitor.
	got := reg.ToPhysical(image.Rect(1000, 0, 3200, 720))
	want := image.Rect(1000, 0, 4800, 1080)
	if got != want {
		t.Fatalf("ToPhysical = %v, want %v", got, want)
	}
}

func TestToPhysicalRoundTrip(t *testing.T) {
	// With an integral scale factor, converting and scaling back must
	// reproduce the rectangle within one pixel per edge.
	reg := NewRegistry([]Monitor{{
		Bounds:   image.Rect(0, 0, 1920, 1080),
		Logical:  image.Pt(1920, 1080),
		Physical: image.Pt(3840, 2160),
	}})

	orig := image.Rect(17, 23, 631, 479)
	phys := reg.ToPhysical(orig)
	back := image.Rect(phys.Min.X/2, phys.Min.Y/2, phys.Max.X/2, phys.Max.Y/2)

	for _, d := range []int{
		back.Min.X - orig.Min.X, back.Min.Y - orig.Min.Y,
		back.Max.X - orig.Max.X, back.Max.Y - orig.Max.Y,
	} {
		if d < -1 || d > 1 {
			t.Fatalf("round trip %v -> %v -> %v drifts more than 1px", orig, phys, back)
		}
	}
}

func TestScaleRect(t *testing.T) {
	m := Monitor{
		Bounds:   image.Rect(0, 0, 1280, 720),
		Logical:  image.Pt(1280, 720),
		Physical: image.Pt(1920, 1080),
	}
	got := ScaleRect(m, image.Rect(100, 100, 300, 200))
	want := image.Rect(150, 150, 450, 300)
	if got != want {
		t.Fatalf("ScaleRect = %v, want %v", got, want)
	}
}
