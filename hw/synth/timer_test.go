package synth

import "testing"

func TestSubTimerPeriod(t *testing.T) {
	for _, compare := range []uint32{0, 1, 2, 7, 1599} {
		var tm SubTimer
		tm.SetCompare(compare)

		var fired []int
		for i := range int(compare+1) * 3 {
			if tm.Tick() {
				fired = append(fired, i)
			}
		}

		if len(fired) != 3 {
			t.Fatalf("compare=%d: fired %d times, want 3", compare, len(fired))
		}
		for i, at := range fired {
			if want := int(compare+1)*(i+1) - 1; at != want {
				t.Errorf("compare=%d: firing %d at call %d, want %d", compare, i, at, want)
			}
		}
	}
}

func TestSubTimerIncrement(t *testing.T) {
	var tm SubTimer
	tm.SetCompare(3000)

	n := 0
	for !tm.TickIncrement(1024) {
		n++
	}
	// 3 increments reach 3072 >= 3000, the 4th call fires.
	if n != 3 {
		t.Errorf("fired after %d calls, want 4", n+1)
	}
	if tm.Counter() != 0 {
		t.Errorf("counter = %d after firing, want 0", tm.Counter())
	}
}

func TestSubTimerReset(t *testing.T) {
	var tm SubTimer
	tm.SetCompare(10)
	tm.Tick()
	tm.Tick()

	tm.Reset(false)
	if tm.Counter() != 0 || tm.Compare() != 10 {
		t.Errorf("Reset(false): counter=%d compare=%d, want 0, 10", tm.Counter(), tm.Compare())
	}

	tm.Tick()
	tm.Reset(true)
	if tm.Counter() != 0 || tm.Compare() != 0 {
		t.Errorf("Reset(true): counter=%d compare=%d, want 0, 0", tm.Counter(), tm.Compare())
	}
}
