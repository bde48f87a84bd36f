package core

import "time"

// FixedStep converts wall-clock time into a whole number of generator steps
// at a target rate. Rates above the display refresh yield several steps per
// frame; a stall never owes more than MaxBurst.
type FixedStep struct {
	step     time.Duration
	owed     time.Duration
	last     time.Time
	MaxBurst int

	now func() time.Time
}

// NewFixedStep targets tps steps per second; tps <= 0 means 60.
func NewFixedStep(tps int) *FixedStep {
	f := &FixedStep{MaxBurst: 64, now: time.Now}
	f.SetTPS(tps)
	f.owed = f.step
	return f
}

// SetTPS changes the step rate.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// TPS reports the step rate.
func (f *FixedStep) TPS() int { return int(time.Second / f.step) }

// Due returns how many steps have come due since the previous call.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.owed += now.Sub(f.last)
	f.last = now
	n := int(f.owed / f.step)
	f.owed -= time.Duration(n) * f.step
	if f.MaxBurst > 0 && n > f.MaxBurst {
		n = f.MaxBurst
		f.owed = 0
	}
	return n
}
