package gizmo

// Timer is a frame-driven repeating callback, the equivalent of setInterval
// for code that runs inside Scene updates. An Interval of 0 fires once per
// Update.
type Timer struct {
	Interval float64

	fn      func()
	elapsed float64
	stopped bool
}

// NewTimer returns a running timer that calls fn every interval seconds.
func NewTimer(interval float64, fn func()) *Timer {
	if interval < 0 {
		interval = 0
	}
	return &Timer{Interval: interval, fn: fn}
}

// Update advances the timer by dt seconds and fires fn for every elapsed
// interval. fn may call Stop.
func (t *Timer) Update(dt float64) {
	if t == nil || t.stopped {
		return
	}
	if t.Interval <= 0 {
		t.fn()
		return
	}
	t.elapsed += dt
	for t.elapsed >= t.Interval && !t.stopped {
		t.elapsed -= t.Interval
		t.fn()
	}
}

// Stop prevents any further calls. Safe on a nil timer.
func (t *Timer) Stop() {
	if t != nil {
		t.stopped = true
	}
}

// Active reports whether the timer is non-nil and not stopped.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}
