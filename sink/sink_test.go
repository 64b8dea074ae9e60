package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"screengrab/grab"
)

func TestWriterWritesNumberedFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	w, err := NewWriter(dir, 4)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if !w.Submit(grab.Packet{Data: []byte{byte(i)}, PTS: int64(i)}) {
			t.Fatalf("Submit %d dropped with room in the queue", i)
		}
	}
	if got := w.Close(); got != 3 {
		t.Fatalf("Close() = %d, want 3 written", got)
	}

	for i, want := range []byte{0, 1, 2} {
		name := filepath.Join(dir, fmt.Sprintf("frame-%06d.bmp", i))
		data, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		if len(data) != 1 || data[0] != want {
			t.Errorf("%s holds %v, want [%d]", name, data, want)
		}
	}
}

func TestSubmitDropsWhenFull(t *testing.T) {
	// Queue of one and no reader progress guaranteed: fill past capacity
	// and check Submit reports the drop instead of blocking.
	w, err := NewWriter(t.TempDir(), 1)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	dropped := 0
	for i := 0; i < 100; i++ {
		if !w.Submit(grab.Packet{Data: []byte{1}}) {
			dropped++
		}
	}
	if dropped == 0 {
		t.Fatal("expected at least one drop with a single-slot queue")
	}
}

func TestCloseDrainsQueue(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir, 16)
	if err != nil {
		t.Fatal(err)
	}

	accepted := 0
	for i := 0; i < 10; i++ {
		if w.Submit(grab.Packet{Data: []byte{byte(i)}}) {
			accepted++
		}
	}
	if got := w.Close(); got != accepted {
		t.Fatalf("Close() = %d, want %d accepted frames on disk", got, accepted)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != accepted {
		t.Fatalf("%d files on disk, want %d", len(entries), accepted)
	}
}
