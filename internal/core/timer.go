package core

import "time"

// maxCatchUp bounds how many ticks a single Advance call reports after a
// stall, so a suspended process does not fast-forward through minutes.
const maxCatchUp = 4

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Interval returns the duration of one tick.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	f.accumulate()
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Advance reports how many ticks are due since the previous call.
func (f *FixedStep) Advance() int {
	f.accumulate()
	n := int(f.accumulator / f.step)
	if n > maxCatchUp {
		n = maxCatchUp
		f.accumulator = 0
		return n
	}
	f.accumulator -= time.Duration(n) * f.step
	return n
}

func (f *FixedStep) accumulate() {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
}
