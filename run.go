package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"chiptune/emu"
	"chiptune/hw/audio"
	"chiptune/hw/tracker"
	"chiptune/song"
)

// loadSong opens the song and decodes it entirely, reporting decoding
// errors as warnings.
func loadSong(path string, cfg emu.Config) (*tracker.Program, song.Infos) {
	s, err := song.Open(path)
	checkf(err, "failed to open song")

	prog, err := s.Program(cfg.Synth.ByteOrder())
	checkf(err, "invalid song")

	infos, err := s.Infos(cfg.Synth.ByteOrder())
	checkf(err, "invalid song")
	if infos.Err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", infos.Err)
	}
	return prog, infos
}

func unlimited(lim Limits) bool {
	return lim.Loops == 0 && lim.Duration == 0
}

// run runs the emulator until the end of the song, the limits, or an
// interrupt signal.
func run(e *emu.Emulator, lim Limits) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := e.Run(ctx, lim.limits())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func renderMain(args Render, cfg emu.Config) {
	args.Synth.apply(&cfg)
	cfg.Output.Stereo = cfg.Output.Stereo || args.Stereo
	cfg.Check()

	prog, infos := loadSong(args.SongPath, cfg)
	if !infos.EndOfStream && unlimited(args.Limits) && args.Output != "-" {
		fatalf("refusing to render a never ending song into %s, use --loops or --duration", args.Output)
	}

	out, err := openOutput(args.Output, cfg)
	checkf(err, "failed to create output")

	var tracer *tracker.JSONTracer
	if args.Trace != nil {
		tracer = tracker.NewJSONTracer(args.Trace)
		cfg.Trace = tracer
	}

	e, err := emu.Launch(prog, cfg, out)
	checkf(err, "failed to start synthesizer")

	err = run(e, args.Limits)
	if args.Trace != nil {
		if terr := tracer.Err(); terr != nil {
			fmt.Fprintf(os.Stderr, "warning: trace incomplete: %s\n", terr)
		}
		args.Trace.Close()
	}
	checkf(err, "rendering failed")

	secs := float64(e.Chip.Samples()) / float64(cfg.Synth.SampleRate)
	fmt.Fprintf(os.Stderr, "%d samples (%.2fs) rendered\n", e.Chip.Samples(), secs)
}

// openOutput creates the render output: raw PCM on stdout for '-', a WAV
// file for a .wav extension and raw PCM otherwise.
func openOutput(path string, cfg emu.Config) (audio.Output, error) {
	if path == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("refusing to write raw audio to a terminal")
		}
		return audio.NewRawWriter(os.Stdout), nil
	}
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		return audio.NewWAVFile(path, cfg.Synth.SampleRate, cfg.Output.SampleRate, cfg.Output.Stereo)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return audio.NewRawWriter(f), nil
}

func playMain(args Play, cfg emu.Config) {
	args.Synth.apply(&cfg)
	if args.Backend != "" {
		cfg.Output.Backend = args.Backend
	}
	cfg.Check()

	prog, infos := loadSong(args.SongPath, cfg)
	if !infos.EndOfStream && unlimited(args.Limits) {
		fmt.Fprintln(os.Stderr, "the song never ends, stop it with Ctrl-C")
	}

	var (
		out audio.Output
		err error
	)
	switch cfg.Output.Backend {
	case emu.BackendOto:
		out, err = audio.NewOtoPlayer(cfg.Synth.SampleRate, cfg.Output.SampleRate, cfg.Output.Stereo)
	default:
		out, err = audio.NewSDLPlayer(cfg.Synth.SampleRate, cfg.Output.SampleRate, cfg.Output.Stereo)
	}
	checkf(err, "failed to open audio output")

	e, err := emu.Launch(prog, cfg, out)
	checkf(err, "failed to start synthesizer")
	checkf(run(e, args.Limits), "playback failed")
}
