package synth

import "testing"

func TestScaleZero(t *testing.T) {
	for _, mode := range []ScaleMode{ScaleAutoOffset, ScaleTruncate} {
		for v := range 256 {
			for s := range 256 {
				got := Scale(uint8(v), uint8(s), mode)
				if (got == 0) != (v == 0 || s == 0) {
					t.Fatalf("%s: Scale(%d, %d) = %d", mode, v, s, got)
				}
			}
		}
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		v, s uint8
		mode ScaleMode
		want uint8
	}{
		{255, 255, ScaleAutoOffset, 255},
		{255, 255, ScaleTruncate, 255},
		{1, 1, ScaleAutoOffset, 1},
		{200, 128, ScaleTruncate, 101},
		{200, 128, ScaleAutoOffset, 150},
		{127, 255, ScaleAutoOffset, 127},
		{127, 255, ScaleTruncate, 127},
		{100, 1, ScaleAutoOffset, 50},
		{100, 1, ScaleTruncate, 1},
	}
	for _, tt := range tests {
		if got := Scale(tt.v, tt.s, tt.mode); got != tt.want {
			t.Errorf("%s: Scale(%d, %d) = %d, want %d", tt.mode, tt.v, tt.s, got, tt.want)
		}
	}
}

func TestScaleNeverAmplifies(t *testing.T) {
	for _, mode := range []ScaleMode{ScaleAutoOffset, ScaleTruncate} {
		for v := range 256 {
			for s := range 256 {
				if got := Scale(uint8(v), uint8(s), mode); int(got) > v {
					t.Fatalf("%s: Scale(%d, %d) = %d", mode, v, s, got)
				}
			}
		}
	}
}

func TestScaleModeText(t *testing.T) {
	for _, mode := range []ScaleMode{ScaleAutoOffset, ScaleTruncate} {
		text, err := mode.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got ScaleMode
		if err := got.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if got != mode {
			t.Errorf("got %s, want %s", got, mode)
		}
	}

	var m ScaleMode
	if err := m.UnmarshalText([]byte("round")); err == nil {
		t.Errorf("UnmarshalText(round) should fail")
	}
}
