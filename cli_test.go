package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"

	"chiptune/emu"
	"chiptune/hw/audio"
	"chiptune/hw/synth"
)

func TestEnableLogs(t *testing.T) {
	tests := []struct {
		list    string
		wantErr string
	}{
		{list: ""},
		{list: "tracker"},
		{list: "tracker,audio,synth"},
		{list: "all"},
		{list: "foo", wantErr: "unknown log module foo"},
		{list: "all,no", wantErr: "cannot use 'all' and 'no' together"},
		{list: "no,tracker", wantErr: "cannot combine 'no' with other log modules"},
	}
	for _, tt := range tests {
		err := enableLogs(tt.list)
		switch {
		case tt.wantErr == "" && err != nil:
			t.Errorf("enableLogs(%q) = %v", tt.list, err)
		case tt.wantErr != "" && (err == nil || err.Error() != tt.wantErr):
			t.Errorf("enableLogs(%q) = %v, want %q", tt.list, err, tt.wantErr)
		}
	}
}

func TestParseRender(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, vars)
	if err != nil {
		t.Fatal(err)
	}

	song := filepath.Join(t.TempDir(), "song.bin")
	writeFile(t, song, []byte{0x70})

	ctx, err := parser.Parse([]string{
		"render", song, "-o", "out.wav",
		"--rate", "16000", "--truncate", "--word-order", "little",
		"--loops", "2", "--duration", "1m30s",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cmd, _, _ := strings.Cut(ctx.Command(), " "); cmd != "render" {
		t.Errorf("command = %q, want render", ctx.Command())
	}

	args := cli.Render
	if args.Output != "out.wav" || args.Limits.Loops != 2 || args.Limits.Duration != 90*time.Second {
		t.Errorf("render args = %+v", args)
	}

	cfg := emu.DefaultConfig()
	args.Synth.apply(&cfg)
	if cfg.Synth.SampleRate != 16000 || cfg.Synth.ScaleMode != synth.ScaleTruncate || cfg.Synth.WordOrder != emu.WordOrderLittle {
		t.Errorf("config after flags = %+v", cfg.Synth)
	}
	if cfg.Synth.Voices != emu.DefaultConfig().Synth.Voices {
		t.Errorf("unset flag changed voices to %d", cfg.Synth.Voices)
	}
}

func TestOpenOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := emu.DefaultConfig()

	out, err := openOutput(filepath.Join(dir, "song.raw"), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out.(*audio.RawWriter); !ok {
		t.Errorf("song.raw opened as %T, want *audio.RawWriter", out)
	}
	if err := out.Write([]uint8{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	out, err = openOutput(filepath.Join(dir, "song.WAV"), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := out.(*audio.WAVFile); !ok {
		t.Errorf("song.WAV opened as %T, want *audio.WAVFile", out)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}
