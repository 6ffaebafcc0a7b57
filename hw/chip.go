// Package hw assembles the synthesizer: a Mixer driven by a tracker
// Interpreter, clocked one sample period at a time.
package hw

import (
	"errors"
	"fmt"

	"chiptune/emu/log"
	"chiptune/hw/synth"
	"chiptune/hw/tracker"
)

var (
	// ErrEndOfStream is returned once the instruction stream has executed
	// EndOfStream. No more samples are produced after that.
	ErrEndOfStream = errors.New("end of stream")

	// ErrConfig reports an invalid synthesizer configuration.
	ErrConfig = errors.New("invalid configuration")
)

const (
	MinSampleRate = 1000
	MaxSampleRate = 65535
)

// Config describes the synthesizer hardware.
type Config struct {
	SampleRate uint32
	Voices     int
	Presets    int
	DefaultBPM uint16
	ScaleMode  synth.ScaleMode

	// Trace, if not nil, receives executed instructions.
	Trace tracker.Tracer
}

// DefaultConfig is the reference hardware: 8kHz, 6 voices.
var DefaultConfig = Config{
	SampleRate: 8000,
	Voices:     6,
	Presets:    synth.MaxPresets,
	DefaultBPM: tracker.DefaultBPM,
	ScaleMode:  synth.ScaleAutoOffset,
}

func (cfg Config) validate() error {
	if cfg.SampleRate < MinSampleRate || cfg.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: sample rate %dHz out of [%d, %d]", ErrConfig, cfg.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if cfg.Voices < 1 || cfg.Voices > synth.MaxVoices {
		return fmt.Errorf("%w: %d voices, want 1 to %d", ErrConfig, cfg.Voices, synth.MaxVoices)
	}
	if cfg.Presets < 1 || cfg.Presets > synth.MaxPresets {
		return fmt.Errorf("%w: %d envelope presets, want 1 to %d", ErrConfig, cfg.Presets, synth.MaxPresets)
	}
	if cfg.DefaultBPM != 0 {
		if _, ok := tracker.BpmToTicks(cfg.SampleRate, cfg.DefaultBPM); !ok {
			return fmt.Errorf("%w: default tempo %d bpm", ErrConfig, cfg.DefaultBPM)
		}
	}
	return nil
}

// Chip is a synthesizer instance. It's not safe for concurrent use.
type Chip struct {
	Mixer   *synth.Mixer
	Tracker *tracker.Interpreter

	cfg     Config
	freqs   synth.FreqTable
	out     uint8
	samples uint64
}

// NewChip creates a synthesizer playing s. Call PowerUp before rendering.
func NewChip(cfg Config, s tracker.Stream) (*Chip, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Chip{
		cfg:   cfg,
		freqs: synth.NewFreqTable(cfg.SampleRate),
	}
	c.Mixer = synth.NewMixer(synth.MixerConfig{
		Voices:     cfg.Voices,
		Presets:    cfg.Presets,
		SampleRate: cfg.SampleRate,
		ScaleMode:  cfg.ScaleMode,
	})
	c.Mixer.SetSink(synth.SinkFunc(func(s uint8) { c.out = s }))
	c.Tracker = tracker.New(c.Mixer, s, tracker.Config{
		SampleRate: cfg.SampleRate,
		DefaultBPM: cfg.DefaultBPM,
		FreqTable:  &c.freqs,
		Trace:      cfg.Trace,
	})

	log.ModEmu.InfoZ("chip created").
		Uint32("rate", cfg.SampleRate).
		Int("voices", cfg.Voices).
		Int("presets", cfg.Presets).
		Stringer("scale", cfg.ScaleMode).
		Int("stream", s.Len()).
		End()
	return c, nil
}

// PowerUp resets the interpreter and the mixer, then executes the first
// instruction of the stream, before the sample clock starts.
func (c *Chip) PowerUp() {
	c.samples = 0
	c.Tracker.Reset()
	c.Mixer.Reset()
	c.Tracker.FetchExecute()
}

// Step runs one sample period and returns the produced sample.
func (c *Chip) Step() (uint8, error) {
	if !c.Mixer.Tick() {
		return 0, ErrEndOfStream
	}
	c.samples++
	return c.out, nil
}

// Render fills dst with samples. It returns the number of samples produced,
// and ErrEndOfStream if the stream ended before dst is filled.
func (c *Chip) Render(dst []uint8) (int, error) {
	for i := range dst {
		s, err := c.Step()
		if err != nil {
			return i, err
		}
		dst[i] = s
	}
	return len(dst), nil
}

func (c *Chip) Config() Config { return c.cfg }

// Samples returns the number of samples produced since power up.
func (c *Chip) Samples() uint64 { return c.samples }

// Loops returns the number of times the stream looped.
func (c *Chip) Loops() int { return c.Tracker.Loops() }

// Ended reports whether the stream executed EndOfStream.
func (c *Chip) Ended() bool { return c.Tracker.Halted() }
