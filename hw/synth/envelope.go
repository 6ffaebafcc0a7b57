package synth

// Envelope durations are counted at 1024 times the sample clock resolution:
// the step timer advances by stepResolution per sample, which keeps the
// integer division of a phase duration into 255 value steps accurate.
const stepResolution = 1024

// sustainHold is a compare value the step timer never reaches.
const sustainHold = 1 << 31

// Preset describes an ADSR envelope. Durations are in sample ticks.
type Preset struct {
	Attack  uint16
	Decay   uint16
	Sustain uint8
	Release uint16
}

// Presets is the table of user-defined envelopes. Index PresetNone is reserved
// and bypasses the envelope, user presets are numbered from 1 to Len().
type Presets struct {
	sampleRate uint32
	table      []Preset
}

// NewPresets creates a table of n user presets (at most MaxPresets) for a
// synthesizer running at sampleRate.
func NewPresets(n int, sampleRate uint32) *Presets {
	n = min(max(n, 0), MaxPresets)
	return &Presets{
		sampleRate: sampleRate,
		table:      make([]Preset, n),
	}
}

func (p *Presets) Len() int { return len(p.table) }

// Valid reports whether idx selects a user preset.
func (p *Presets) Valid(idx uint8) bool {
	return idx != PresetNone && int(idx) <= len(p.table)
}

// Get returns the user preset idx. idx must be valid.
func (p *Presets) Get(idx uint8) Preset {
	return p.table[idx-1]
}

// Set stores a preset with durations already in ticks. It reports false, and
// does nothing, if idx isn't a user preset.
func (p *Presets) Set(idx uint8, preset Preset) bool {
	if !p.Valid(idx) {
		return false
	}
	p.table[idx-1] = preset
	return true
}

// Configure sets the user preset idx from durations in milliseconds. It
// reports false, and does nothing, if idx isn't a user preset.
func (p *Presets) Configure(idx uint8, attackMs, decayMs uint16, sustain uint8, releaseMs uint16) bool {
	return p.Set(idx, Preset{
		Attack:  MsToTicks(p.sampleRate, attackMs),
		Decay:   MsToTicks(p.sampleRate, decayMs),
		Sustain: sustain,
		Release: MsToTicks(p.sampleRate, releaseMs),
	})
}

// MsToTicks converts a duration in milliseconds into a tick compare value at
// sampleRate. For 1 to 1000ms the conversion is sampleRate/(1000/ms)-1, so the
// achievable durations get coarser as ms grows. 0ms gives an instantaneous
// phase and longer durations are proportional. The result saturates at 65535.
func MsToTicks(sampleRate uint32, ms uint16) uint16 {
	if ms == 0 {
		return 0
	}

	var ticks uint32
	if ms <= 1000 {
		ticks = sampleRate / (1000 / uint32(ms))
	} else {
		ticks = uint32(uint64(sampleRate) * uint64(ms) / 1000)
	}
	if ticks == 0 {
		return 0
	}
	return uint16(min(ticks-1, 0xFFFF))
}

// stepCompare returns the step timer compare value spreading 255 value steps
// over a phase lasting ticks samples.
func stepCompare(ticks uint16) uint32 {
	return (uint32(ticks)*stepResolution + 254) / 255
}

// Envelope is the per-voice ADSR state machine. Its sample is used as an
// attenuation of the voice oscillator.
type Envelope struct {
	Type  uint8 // preset index, or PresetNone
	State EnvState
	Ended bool
	Value uint8

	timer SubTimer
}

// Reset moves the envelope to state and arms its step timer. Bypassed
// envelopes ignore it. Releasing an envelope that already ended does nothing,
// so a finished note can't be resurrected.
func (env *Envelope) Reset(state EnvState, presets *Presets) {
	if env.Type == PresetNone {
		return
	}
	if state == Release && env.Ended {
		return
	}

	env.State = state
	if env.Ended {
		env.Value = 0
	}

	preset := presets.Get(env.Type)
	switch state {
	case Attack:
		env.timer.SetCompare(stepCompare(preset.Attack))
	case Decay:
		env.Value = 255
		env.timer.SetCompare(stepCompare(preset.Decay))
	case Sustain:
		env.Value = preset.Sustain
		env.timer.SetCompare(sustainHold)
	case Release:
		env.Value = preset.Sustain
		env.timer.SetCompare(stepCompare(preset.Release))
	}

	env.Ended = false
}

// Sample steps the envelope by one sample and returns its current level, 255
// meaning no attenuation.
func (env *Envelope) Sample(presets *Presets) uint8 {
	if env.Type == PresetNone {
		return 255
	}
	if env.Ended {
		return 0
	}

	if env.timer.TickIncrement(stepResolution) {
		preset := presets.Get(env.Type)
		switch env.State {
		case Attack:
			if int(env.Value)+1 >= 255 || preset.Attack == 0 {
				env.Reset(Decay, presets)
			} else {
				env.Value++
			}
		case Decay:
			if int(env.Value)-1 <= int(preset.Sustain) || preset.Decay == 0 {
				env.Reset(Sustain, presets)
			} else {
				env.Value--
			}
		case Release:
			if int(env.Value)-1 <= 0 || preset.Release == 0 {
				env.Ended = true
			} else {
				env.Value--
			}
		}
	}

	return env.Value
}

// Timer exposes the step timer, for inspection.
func (env *Envelope) Timer() SubTimer {
	return env.timer
}
