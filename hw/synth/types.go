package synth

//go:generate go tool stringer -type=Waveform,EnvState -output=types_string.go

// Waveform selects the shape produced by an Oscillator.
type Waveform uint8

const (
	None Waveform = iota
	Sine
	Triangle
	Square
	Sawtooth
	Noise
	DC // constant duty level, for debugging
)

// EnvState is the current phase of an ADSR envelope.
type EnvState uint8

const (
	Attack EnvState = iota
	Decay
	Sustain
	Release
)

const (
	// MaxVoices is the number of voices addressable by the 4-bit channel
	// selector of the instruction stream.
	MaxVoices = 16

	// MaxPresets is the size limit of the ADSR preset table.
	MaxPresets = 16

	// PresetNone is the reserved preset index that bypasses the envelope.
	PresetNone = 0
)

// Sequencer paces the instruction stream. The Mixer calls TempoTick once per
// sample, before synthesizing the voices. It returns false once the stream
// has ended, after which no sample must be produced.
type Sequencer interface {
	TempoTick() bool
}

// Sink receives finished samples: unsigned 8-bit PCM centered at 127.
type Sink interface {
	EmitSample(sample uint8)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(uint8)

func (f SinkFunc) EmitSample(sample uint8) { f(sample) }
