package grab

import (
	"fmt"
	"strings"
)

// Target selects what a session captures: the whole desktop, or one window
// resolved by exact title match. Immutable once resolved.
type Target struct {
	// Title of the window to capture. Empty means desktop capture.
	Title string
}

// Desktop reports whether the target is the whole virtual desktop.
func (t Target) Desktop() bool { return t.Title == "" }

func (t Target) String() string {
	if t.Desktop() {
		return "desktop"
	}
	return "title=" + t.Title
}

// ParseTarget parses a target spec string: "desktop" or
// "title=<window name>". Anything else is a configuration error.
func ParseTarget(spec string) (Target, error) {
	if spec == "desktop" {
		return Target{}, nil
	}
	if name, ok := strings.CutPrefix(spec, "title="); ok && name != "" {
		return Target{Title: name}, nil
	}
	return Target{}, fmt.Errorf(`grab: use "desktop" or "title=<window name>" to specify the target, got %q`, spec)
}
