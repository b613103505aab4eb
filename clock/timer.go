package clock

// Timer elapses once its duration has passed on the owning clock. A timer
// that was never started, or was stopped, reports elapsed.
type Timer struct {
	Duration float64

	clock   *Clock
	endTime float64
}

// NewTimer creates a stopped timer of duration milliseconds.
func (c *Clock) NewTimer(duration float64) *Timer {
	return &Timer{Duration: duration, clock: c, endTime: -1}
}

func (t *Timer) Start() {
	t.endTime = t.clock.Now() + t.Duration
}

func (t *Timer) Stop() {
	t.endTime = -1
}

func (t *Timer) Elapsed() bool {
	return t.clock.Now() > t.endTime
}

// Remaining returns the milliseconds left before the timer elapses, or zero.
func (t *Timer) Remaining() float64 {
	r := t.endTime - t.clock.Now()
	if r < 0 {
		return 0
	}
	return r
}
