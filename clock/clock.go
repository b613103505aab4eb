// Package clock provides the pausable logical time shared by physics,
// animation and gameplay timers.
package clock

import "time"

// Source returns a monotonic time in milliseconds.
type Source func() float64

// WallSource returns a Source counting milliseconds since its creation.
func WallSource() Source {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start)) / float64(time.Millisecond)
	}
}

// Clock is a logical clock that stops while paused. Time spent paused is
// subtracted from every later reading, so timers and animations resume where
// they left off.
type Clock struct {
	source Source

	now   float64
	delta float64

	paused         bool
	pauseTime      float64
	totalPauseTime float64
}

// New creates a clock reading from source. A nil source uses WallSource.
func New(source Source) *Clock {
	if source == nil {
		source = WallSource()
	}
	c := &Clock{source: source}
	c.now = source()
	return c
}

// Update samples the source. It is a no-op while paused.
func (c *Clock) Update() {
	if c.paused {
		c.delta = 0
		return
	}
	now := c.source() - c.totalPauseTime
	c.delta = now - c.now
	c.now = now
}

func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pauseTime = c.source()
	c.delta = 0
}

func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	now := c.source()
	c.totalPauseTime += now - c.pauseTime
	c.now = now - c.totalPauseTime
	c.paused = false
}

func (c *Clock) Paused() bool {
	return c.paused
}

// Now returns the logical time in milliseconds as of the last Update.
func (c *Clock) Now() float64 {
	return c.now
}

// Delta returns the logical milliseconds elapsed between the last two
// Update calls. It is zero while paused.
func (c *Clock) Delta() float64 {
	return c.delta
}
