// Package frame provides render loop pacing: a frame-rate governor and a
// monotonic clock.
package frame

import "time"

// Governor caps how often the render loop does work. The loop may spin as
// fast as the display allows; Ready reports whether a frame should run.
//
// Skipped iterations do no work at all. When a frame runs, the reference
// timestamp moves to now minus the remainder of the elapsed time modulo the
// interval, so lateness is carried into the next frame instead of
// accumulating as drift.
type Governor struct {
	interval time.Duration
	then     time.Time
}

// NewGovernor creates a governor for fps frames per second, starting at start.
// A non-positive fps disables the cap.
func NewGovernor(fps int, start time.Time) *Governor {
	var interval time.Duration
	if fps > 0 {
		interval = time.Second / time.Duration(fps)
	}
	return &Governor{
		interval: interval,
		then:     start,
	}
}

// Interval returns the minimum time between executed frames.
func (g *Governor) Interval() time.Duration {
	return g.interval
}

// Ready reports whether a frame should execute at now.
func (g *Governor) Ready(now time.Time) bool {
	delta := now.Sub(g.then)
	if g.interval <= 0 {
		g.then = now
		return true
	}
	if delta < g.interval {
		return false
	}
	g.then = now.Add(-(delta % g.interval))
	return true
}

// Reset moves the reference timestamp to now, dropping any carried remainder.
func (g *Governor) Reset(now time.Time) {
	g.then = now
}
