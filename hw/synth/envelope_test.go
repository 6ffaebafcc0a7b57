package synth

import "testing"

func newTestPresets(p Preset) *Presets {
	presets := NewPresets(4, 8000)
	presets.Set(1, p)
	return presets
}

func TestEnvelopeZeroAttack(t *testing.T) {
	presets := newTestPresets(Preset{Attack: 0, Decay: 100, Sustain: 100, Release: 100})
	env := Envelope{Type: 1, Ended: true}
	env.Reset(Attack, presets)

	first := env.Sample(presets)
	second := env.Sample(presets)
	if first != 255 && second != 255 {
		t.Fatalf("zero attack: samples %d, %d, want 255 by the second sample", first, second)
	}
	if env.State != Decay {
		t.Errorf("state = %s, want Decay", env.State)
	}
}

func TestEnvelopeRelease(t *testing.T) {
	for _, release := range []uint16{0, 1, 50, 4000} {
		presets := newTestPresets(Preset{Attack: 10, Decay: 10, Sustain: 180, Release: release})
		env := Envelope{Type: 1, Ended: true}
		env.Reset(Attack, presets)
		for range 10000 {
			env.Sample(presets)
		}
		if env.State != Sustain {
			t.Fatalf("release=%d: state = %s, want Sustain", release, env.State)
		}

		env.Reset(Release, presets)
		prev := env.Value
		for i := 0; !env.Ended; i++ {
			v := env.Sample(presets)
			if v > prev {
				t.Fatalf("release=%d: value went up from %d to %d", release, prev, v)
			}
			prev = v
			if i > 1<<22 {
				t.Fatalf("release=%d: envelope never ended", release)
			}
		}
		if v := env.Sample(presets); v != 0 {
			t.Errorf("release=%d: value = %d after end, want 0", release, v)
		}

		// Releasing again doesn't resurrect the envelope.
		env.Reset(Release, presets)
		if !env.Ended || env.Sample(presets) != 0 {
			t.Errorf("release=%d: released ended envelope sounds again", release)
		}
	}
}

func TestEnvelopeSustainHolds(t *testing.T) {
	presets := newTestPresets(Preset{Attack: 0, Decay: 0, Sustain: 77, Release: 10})
	env := Envelope{Type: 1, Ended: true}
	env.Reset(Attack, presets)

	env.Sample(presets) // attack done
	env.Sample(presets) // decay done
	if env.State != Sustain {
		t.Fatalf("state = %s, want Sustain", env.State)
	}
	for i := range 1_000_000 {
		if v := env.Sample(presets); v != 77 {
			t.Fatalf("sample %d: value = %d, want 77", i, v)
		}
	}
}

func TestEnvelopeBypass(t *testing.T) {
	presets := newTestPresets(Preset{Attack: 5, Decay: 5, Sustain: 5, Release: 5})
	env := Envelope{Type: PresetNone}
	for _, state := range []EnvState{Attack, Decay, Sustain, Release} {
		env.Reset(state, presets)
		for range 100 {
			if v := env.Sample(presets); v != 255 {
				t.Fatalf("bypassed envelope returned %d, want 255", v)
			}
		}
	}
}

func TestEnvelopeNoteOnDuringRelease(t *testing.T) {
	presets := newTestPresets(Preset{Attack: 100, Decay: 100, Sustain: 200, Release: 1000})
	env := Envelope{Type: 1, Ended: true}
	env.Reset(Attack, presets)
	for range 5000 {
		env.Sample(presets)
	}
	env.Reset(Release, presets)
	for range 100 {
		env.Sample(presets)
	}
	v := env.Value

	// Retriggering from a running envelope starts the attack from the
	// current level.
	env.Reset(Attack, presets)
	if env.Value != v || env.State != Attack {
		t.Errorf("retrigger: value=%d state=%s, want %d, Attack", env.Value, env.State, v)
	}
}

func TestMsToTicks(t *testing.T) {
	tests := []struct {
		rate uint32
		ms   uint16
		want uint16
	}{
		{8000, 0, 0},
		{8000, 1, 7},
		{8000, 10, 79},
		{8000, 300, 2665},
		{8000, 1000, 7999},
		{8000, 1500, 11999},
		{44100, 1000, 44099},
		{44100, 2000, 65535},
		{1000, 1, 0},
	}
	for _, tt := range tests {
		if got := MsToTicks(tt.rate, tt.ms); got != tt.want {
			t.Errorf("MsToTicks(%d, %d) = %d, want %d", tt.rate, tt.ms, got, tt.want)
		}
	}
}

func TestPresetsConfigure(t *testing.T) {
	p := NewPresets(2, 8000)
	if p.Configure(PresetNone, 1, 1, 1, 1) {
		t.Errorf("Configure(PresetNone) accepted")
	}
	if p.Configure(3, 1, 1, 1, 1) {
		t.Errorf("Configure(3) accepted with 2 presets")
	}
	if !p.Configure(2, 10, 20, 30, 40) {
		t.Fatalf("Configure(2) rejected")
	}
	want := Preset{Attack: 79, Decay: 159, Sustain: 30, Release: 319}
	if got := p.Get(2); got != want {
		t.Errorf("preset 2 = %+v, want %+v", got, want)
	}
}
