// Package pacer spaces frame emission at a fixed rational rate.
//
// A Pacer hands out scheduled timestamps one tick apart, sleeping a
// blocking caller until the next frame is due. Scheduler jitter does not
// accumulate: timestamps are computed from the rational rate and a frame
// counter, never by adding a rounded interval to the previous value. When
// the caller stalls for more than a tick, exactly one tick is skipped per
// call so the schedule catches up without a backlog of overdue frames.
package pacer

import (
	"errors"
	"time"
)

// ErrAgain is returned by TryNext when the next frame is not yet due.
// It is not a failure: no pacer state is mutated on this path.
var ErrAgain = errors.New("pacer: frame not due yet")

const microsPerSecond = 1000000

// Rate is a frame rate expressed as the rational Num/Den frames per second.
type Rate struct {
	Num int
	Den int
}

// NTSC is the default capture rate, 30000/1001 (~29.97 fps).
var NTSC = Rate{Num: 30000, Den: 1001}

// Valid reports whether the rate is a positive rational.
func (r Rate) Valid() bool { return r.Num > 0 && r.Den > 0 }

// TickMicros returns the duration of one tick (the nominal inter-frame
// interval) in microseconds, truncated.
func (r Rate) TickMicros() int64 {
	return microsPerSecond * int64(r.Den) / int64(r.Num)
}

// Pacer is the frame-timing state machine. It is not safe for concurrent
// use; capture sessions are single-threaded by design.
type Pacer struct {
	rate    Rate
	base    int64 // µs timestamp of frame 0
	n       int64 // index of the next frame to emit
	started bool

	now   func() int64
	sleep func(time.Duration)
}

// New creates a pacer for the given rate. The first call to Next or
// TryNext emits immediately and anchors the schedule.
func New(rate Rate) *Pacer {
	return &Pacer{
		rate:  rate,
		now:   func() int64 { return time.Now().UnixMicro() },
		sleep: time.Sleep,
	}
}

// Next blocks until the next frame is due and returns its timestamp in
// microseconds. Returned timestamps are strictly increasing, one tick
// apart except after a stall (see package comment).
func (p *Pacer) Next() int64 {
	pts, _ := p.step(true)
	return pts
}

// TryNext returns the next frame timestamp if it is already due, or
// ErrAgain without advancing the schedule.
func (p *Pacer) TryNext() (int64, error) {
	return p.step(false)
}

// due computes the scheduled timestamp of frame n from the rational rate,
// so per-frame rounding never accumulates into drift.
func (p *Pacer) due(n int64) int64 {
	return p.base + n*microsPerSecond*int64(p.rate.Den)/int64(p.rate.Num)
}

func (p *Pacer) step(block bool) (int64, error) {
	if !p.started {
		p.started = true
		p.base = p.now()
		p.n = 1
		return p.base, nil
	}

	due := p.due(p.n)
	now := p.now()

	if now-due > p.rate.TickMicros() {
		// More than a full tick behind schedule: skip exactly one tick.
		// Repeated stalls skip one tick per call, never more.
		p.n++
		due = p.due(p.n)
	}

	for {
		delay := due - now
		if delay <= 0 {
			break
		}
		if !block {
			return 0, ErrAgain
		}
		p.sleep(time.Duration(delay) * time.Microsecond)
		now = p.now()
	}

	p.n++
	return due, nil
}
