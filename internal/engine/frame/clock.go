package frame

import "time"

// Clock tracks time elapsed since it started. Elapsed only advances when
// Delta is called, so reading it between frames is stable.
type Clock struct {
	now     func() time.Time
	last    time.Time
	elapsed time.Duration
}

// NewClock creates a running clock. A nil now uses time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{
		now:  now,
		last: now(),
	}
}

// Delta returns the time since the previous Delta call (or since the clock
// started) and adds it to Elapsed.
func (c *Clock) Delta() time.Duration {
	t := c.now()
	d := t.Sub(c.last)
	if d < 0 {
		d = 0
	}
	c.last = t
	c.elapsed += d
	return d
}

// Elapsed returns the accumulated time as of the last Delta call.
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// ElapsedSeconds returns Elapsed as float32 seconds, the unit shader time
// uniforms use.
func (c *Clock) ElapsedSeconds() float32 {
	return float32(c.elapsed.Seconds())
}
