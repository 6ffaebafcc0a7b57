// Package emu emulates, on the host, the sample interrupt of the synthesizer:
// it clocks a Chip at its sample rate and sends the produced samples to an
// audio output.
package emu

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"chiptune/emu/log"
	"chiptune/hw"
	"chiptune/hw/audio"
	"chiptune/hw/tracker"
)

// Limits bounds the duration of Run. Zero values mean no limit.
type Limits struct {
	// Loops stops the synthesis once the stream looped that many times.
	Loops int

	// Samples and Duration stop the synthesis once that many samples have
	// been produced. The smallest of both wins.
	Samples  uint64
	Duration time.Duration
}

// samples returns the number of samples allowed at the given sample rate,
// or 0 if there's no sample limit.
func (lim Limits) samples(rate uint32) uint64 {
	n := lim.Samples
	if lim.Duration > 0 {
		dur := uint64(lim.Duration/time.Millisecond) * uint64(rate) / 1000
		if n == 0 || dur < n {
			n = max(dur, 1)
		}
	}
	return n
}

// Number of chunks in flight between the synthesizer and the output.
const queueLen = 4

type Emulator struct {
	Chip *hw.Chip
	out  audio.Output
	cfg  Config

	quit      atomic.Bool
	closeOnce sync.Once
}

// Launch creates the synthesizer for the given stream and powers it up. It
// doesn't start synthesis, call Run() for that.
func Launch(s tracker.Stream, cfg Config, out audio.Output) (*Emulator, error) {
	cfg.Check()

	hwcfg := cfg.Synth.HW()
	hwcfg.Trace = cfg.Trace
	chip, err := hw.NewChip(hwcfg, s)
	if err != nil {
		return nil, fmt.Errorf("power up failed: %w", err)
	}
	chip.PowerUp()

	return &Emulator{
		Chip: chip,
		out:  out,
		cfg:  cfg,
	}, nil
}

// Run produces samples and sends them to the output until the stream ends,
// one of the limits is reached, Stop is called or ctx is cancelled. The output
// is closed when Run returns.
func (e *Emulator) Run(ctx context.Context, lim Limits) error {
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	chunks := make(chan []uint8, queueLen)

	g.Go(func() error {
		defer close(chunks)
		return e.produce(ctx, lim, chunks)
	})
	g.Go(func() error {
		for buf := range chunks {
			if err := e.out.Write(buf); err != nil {
				return fmt.Errorf("audio output: %w", err)
			}
		}
		return nil
	})

	err := g.Wait()
	if cerr := e.close(); cerr != nil && err == nil {
		err = fmt.Errorf("close audio output: %w", cerr)
	}

	log.ModEmu.InfoZ("Synthesis loop exited").
		Uint64("samples", e.Chip.Samples()).
		Int("loops", e.Chip.Loops()).
		Bool("ended", e.Chip.Ended()).
		Duration("elapsed", time.Since(start)).
		End()
	return err
}

func (e *Emulator) produce(ctx context.Context, lim Limits, chunks chan<- []uint8) error {
	maxSamples := lim.samples(e.cfg.Synth.SampleRate)

	for !e.quit.Load() {
		n := e.cfg.Output.Chunk
		if maxSamples != 0 {
			left := maxSamples - e.Chip.Samples()
			if left == 0 {
				log.ModEmu.DebugZ("sample limit reached").Uint64("samples", maxSamples).End()
				return nil
			}
			n = int(min(uint64(n), left))
		}

		buf := make([]uint8, n)
		n, done, err := e.render(buf, lim.Loops)
		if n > 0 {
			select {
			case chunks <- buf[:n]:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err != nil || done {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// render fills buf, stopping early at the end of the stream or once the stream
// looped maxLoops times.
func (e *Emulator) render(buf []uint8, maxLoops int) (n int, done bool, err error) {
	for n < len(buf) {
		s, err := e.Chip.Step()
		if errors.Is(err, hw.ErrEndOfStream) {
			log.ModEmu.DebugZ("end of stream").Uint64("samples", e.Chip.Samples()).End()
			return n, true, nil
		}
		if err != nil {
			return n, true, err
		}
		if maxLoops > 0 && e.Chip.Loops() >= maxLoops {
			log.ModEmu.DebugZ("loop limit reached").Int("loops", e.Chip.Loops()).End()
			return n, true, nil
		}
		buf[n] = s
		n++
	}
	return n, false, nil
}

func (e *Emulator) close() error {
	var err error
	e.closeOnce.Do(func() { err = e.out.Close() })
	return err
}

// Stop requests Run to return. It's safe for concurrent use.
func (e *Emulator) Stop() {
	e.quit.Store(true)
}
