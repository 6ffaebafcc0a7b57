package hw_test

import (
	"errors"
	"path/filepath"
	"testing"

	"chiptune/hw"
	"chiptune/hw/synth"
	"chiptune/tests"
)

func TestNewChipConfig(t *testing.T) {
	p := tests.NewAsm().EndOfStream().Program(t)

	cases := []struct {
		name    string
		edit    func(*hw.Config)
		wantErr bool
	}{
		{name: "default", edit: func(*hw.Config) {}},
		{name: "rate too low", edit: func(c *hw.Config) { c.SampleRate = 999 }, wantErr: true},
		{name: "rate too high", edit: func(c *hw.Config) { c.SampleRate = 96000 }, wantErr: true},
		{name: "no voices", edit: func(c *hw.Config) { c.Voices = 0 }, wantErr: true},
		{name: "17 voices", edit: func(c *hw.Config) { c.Voices = 17 }, wantErr: true},
		{name: "16 voices", edit: func(c *hw.Config) { c.Voices = 16 }},
		{name: "no presets", edit: func(c *hw.Config) { c.Presets = 0 }, wantErr: true},
		{name: "slow tempo", edit: func(c *hw.Config) { c.DefaultBPM = 30 }, wantErr: true},
		{name: "44.1kHz", edit: func(c *hw.Config) { c.SampleRate = 44100 }},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			cfg := hw.DefaultConfig
			tt.edit(&cfg)
			_, err := hw.NewChip(cfg, p)
			if tt.wantErr {
				if !errors.Is(err, hw.ErrConfig) {
					t.Errorf("NewChip() error = %v, want ErrConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewChip() error = %v", err)
			}
		})
	}
}

func TestChipPowerUpExecutesFirstInstruction(t *testing.T) {
	p := tests.NewAsm().SetGlobalVolume(99).SetVolume(0, 1).Program(t)
	chip, err := hw.NewChip(hw.DefaultConfig, p)
	if err != nil {
		t.Fatal(err)
	}

	chip.PowerUp()
	if got := chip.Mixer.GlobalVolume(); got != 99 {
		t.Errorf("global volume = %d after power up, want 99", got)
	}
	if got := chip.Tracker.Cursor(); got != 2 {
		t.Errorf("cursor = %d after power up, want 2", got)
	}
	if chip.Samples() != 0 {
		t.Errorf("samples = %d, want 0", chip.Samples())
	}
}

func TestChipEndOfStream(t *testing.T) {
	p := tests.NewAsm().EndOfStream().Program(t)
	chip, err := hw.NewChip(hw.DefaultConfig, p)
	if err != nil {
		t.Fatal(err)
	}
	chip.PowerUp()

	if !chip.Ended() {
		t.Fatalf("chip not ended")
	}
	if _, err := chip.Step(); !errors.Is(err, hw.ErrEndOfStream) {
		t.Errorf("Step() error = %v, want ErrEndOfStream", err)
	}

	buf := make([]uint8, 16)
	n, err := chip.Render(buf)
	if n != 0 || !errors.Is(err, hw.ErrEndOfStream) {
		t.Errorf("Render() = %d, %v, want 0, ErrEndOfStream", n, err)
	}
}

func render(t *testing.T, cfg hw.Config, a *tests.Asm) []uint8 {
	t.Helper()

	chip, err := hw.NewChip(cfg, a.Program(t))
	if err != nil {
		t.Fatal(err)
	}
	chip.PowerUp()

	var pcm []uint8
	buf := make([]uint8, 1024)
	for {
		n, err := chip.Render(buf)
		pcm = append(pcm, buf[:n]...)
		if errors.Is(err, hw.ErrEndOfStream) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if len(pcm) > 10*int(cfg.SampleRate) {
			t.Fatal("song didn't end in 10s")
		}
	}
	if uint64(len(pcm)) != chip.Samples() {
		t.Errorf("rendered %d samples, chip counted %d", len(pcm), chip.Samples())
	}
	return pcm
}

func TestRenderGolden(t *testing.T) {
	for _, tc := range []struct {
		name string
		cfg  func() hw.Config
	}{
		{name: "demo-8k", cfg: func() hw.Config { return hw.DefaultConfig }},
		{name: "demo-8k-truncate", cfg: func() hw.Config {
			cfg := hw.DefaultConfig
			cfg.ScaleMode = synth.ScaleTruncate
			return cfg
		}},
		{name: "demo-16k", cfg: func() hw.Config {
			cfg := hw.DefaultConfig
			cfg.SampleRate = 16000
			return cfg
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			pcm := render(t, tc.cfg(), tests.Demo())
			if len(pcm) == 0 {
				t.Fatal("no samples rendered")
			}
			tests.CompareWithGolden(t, pcm, filepath.Join("testdata", tc.name+".raw.golden"))
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := render(t, hw.DefaultConfig, tests.Demo())
	b := render(t, hw.DefaultConfig, tests.Demo())
	if string(a) != string(b) {
		t.Errorf("two renders of the same song differ")
	}

	nonSilent := 0
	for _, s := range a {
		if s != 0 {
			nonSilent++
		}
	}
	if nonSilent == 0 {
		t.Errorf("demo song rendered silence")
	}
}
