// Package sink drains captured packets to disk off the capture thread.
//
// Each packet is already a complete bitmap file, so the writer just lays
// them down as numbered .bmp files. The queue is bounded and Submit drops
// rather than blocks: a slow disk must never stall the capture loop, and
// for a real-time grabber a dropped frame beats a late one.
package sink

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"screengrab/grab"
)

// Writer is a single-goroutine packet writer. One goroutine keeps the
// frame numbering in submission order.
type Writer struct {
	dir  string
	jobs chan grab.Packet
	wg   sync.WaitGroup

	written int
}

// NewWriter creates the output directory and starts the writer goroutine.
// queue <= 0 picks a small default.
func NewWriter(dir string, queue int) (*Writer, error) {
	if queue <= 0 {
		queue = 8
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}
	w := &Writer{dir: dir, jobs: make(chan grab.Packet, queue)}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Writer) run() {
	defer w.wg.Done()
	n := 0
	for pkt := range w.jobs {
		name := filepath.Join(w.dir, fmt.Sprintf("frame-%06d.bmp", n))
		n++
		if err := os.WriteFile(name, pkt.Data, 0o644); err != nil {
			log.Printf("sink: failed to write %s: %v", name, err)
			continue
		}
		w.written++
	}
}

// Submit enqueues a packet for writing. Returns false if the queue is full
// and the packet was dropped.
func (w *Writer) Submit(pkt grab.Packet) bool {
	select {
	case w.jobs <- pkt:
		return true
	default:
		return false
	}
}

// Close drains queued packets and stops the writer, returning the number
// of frames written.
func (w *Writer) Close() int {
	close(w.jobs)
	w.wg.Wait()
	return w.written
}
