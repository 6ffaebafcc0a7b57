package synth

// SubTimer is a software timer multiplexed over the sample clock. Every
// duration in the synthesizer (tempo, envelope steps) is counted in
// SubTimer ticks.
//
// The compare check happens before the counter moves, so a timer armed with
// compare c fires once every c+1 calls to Tick.
type SubTimer struct {
	compare uint32
	counter uint32
}

// Tick advances the timer by one tick and reports whether it fired. A timer
// with compare 0 fires on every call.
func (t *SubTimer) Tick() bool {
	if t.counter >= t.compare {
		t.counter = 0
		return true
	}
	t.counter++
	return false
}

// TickIncrement is Tick with an arbitrary step, used to count at a finer
// resolution than the sample clock.
func (t *SubTimer) TickIncrement(step uint16) bool {
	if t.counter >= t.compare {
		t.counter = 0
		return true
	}
	t.counter += uint32(step)
	return false
}

// SetCompare arms the timer with a new compare value and restarts counting.
func (t *SubTimer) SetCompare(compare uint32) {
	t.compare = compare
	t.counter = 0
}

// Reset restarts counting. If all is set, the compare value is cleared too.
func (t *SubTimer) Reset(all bool) {
	if all {
		t.compare = 0
	}
	t.counter = 0
}

func (t *SubTimer) Compare() uint32 { return t.compare }
func (t *SubTimer) Counter() uint32 { return t.counter }
