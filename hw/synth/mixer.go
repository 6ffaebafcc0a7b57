package synth

import (
	"chiptune/emu/log"
)

// Voice is one mixer lane.
type Voice struct {
	Osc    Oscillator
	Env    Envelope
	Volume uint8
}

// Mixer holds all the synthesis state: voices, envelope presets, the shared
// noise generator and the global volume. It is driven by calling Tick once
// per sample period, from a single goroutine.
type Mixer struct {
	voices       []Voice
	globalVolume uint8

	presets *Presets
	rng     Xorshift
	mode    ScaleMode

	seq  Sequencer
	sink Sink
}

type MixerConfig struct {
	Voices     int
	Presets    int
	SampleRate uint32
	ScaleMode  ScaleMode
}

// NewMixer creates a mixer with cfg.Voices voices (clamped to 1..MaxVoices).
// The mixer must be given a sequencer and a sink before calling Tick.
func NewMixer(cfg MixerConfig) *Mixer {
	n := min(max(cfg.Voices, 1), MaxVoices)
	m := &Mixer{
		voices:  make([]Voice, n),
		presets: NewPresets(cfg.Presets, cfg.SampleRate),
		rng:     NewXorshift(NoiseSeed),
		mode:    cfg.ScaleMode,
	}
	m.Reset()
	return m
}

func (m *Mixer) SetSequencer(seq Sequencer) { m.seq = seq }
func (m *Mixer) SetSink(sink Sink)          { m.sink = sink }

// Reset silences every voice and sets the global volume to 0. Envelopes are
// bypassed and marked ended, so a voice only sounds after explicit setup. The
// noise generator keeps running.
func (m *Mixer) Reset() {
	m.globalVolume = 0

	for i := range m.voices {
		v := &m.voices[i]
		v.Volume = 0

		v.Env.Type = PresetNone
		v.Env.Reset(Attack, m.presets)
		v.Env.Ended = true

		v.Osc.Waveform = None
		v.Osc.Duty = 127
		v.Osc.Tuning = 0
		v.Osc.Phase = 0
	}

	log.ModSynth.DebugZ("mixer reset").Int("voices", len(m.voices)).End()
}

// Tick runs one sample period: it lets the sequencer advance, synthesizes and
// mixes all voices, then emits one sample to the sink. Tick returns false,
// without emitting anything, once the sequencer reports the end of the stream.
func (m *Mixer) Tick() bool {
	if m.seq != nil && !m.seq.TempoTick() {
		return false
	}
	m.sink.EmitSample(m.mix())
	return true
}

func (m *Mixer) mix() uint8 {
	var sum int32
	for i := range m.voices {
		v := &m.voices[i]

		value := v.Osc.Sample(&m.rng)
		v.Osc.Advance()

		adsr := v.Env.Sample(m.presets)

		value = Scale(value, adsr, m.mode)
		value = Scale(value, v.Volume, m.mode)

		// Remove DC offset.
		sum += int32(value) - 127
	}

	// Map [-127*N, 127*N] back to [0, 255]. Each voice can reach +128, clamp
	// the edges.
	n := int32(len(m.voices))
	sample := (sum + 127*n) * 255 / (254 * n)
	sample = min(max(sample, 0), 255)

	return Scale(uint8(sample), m.globalVolume, m.mode)
}

// Voices returns the number of voices.
func (m *Mixer) Voices() int { return len(m.voices) }

// Voice returns a copy of the state of voice ch.
func (m *Mixer) Voice(ch uint8) Voice { return m.voices[ch] }

func (m *Mixer) Presets() *Presets    { return m.presets }
func (m *Mixer) GlobalVolume() uint8  { return m.globalVolume }
func (m *Mixer) ScaleMode() ScaleMode { return m.mode }
func (m *Mixer) NoiseState() uint32   { return m.rng.State() }

// The following setters assume a valid channel index.

func (m *Mixer) SetWave(ch uint8, wf Waveform) {
	m.voices[ch].Osc.Waveform = wf
}

func (m *Mixer) SetVolume(ch uint8, volume uint8) {
	m.voices[ch].Volume = volume
}

func (m *Mixer) SetGlobalVolume(volume uint8) {
	m.globalVolume = volume
}

func (m *Mixer) SetDuty(ch uint8, duty uint8) {
	m.voices[ch].Osc.Duty = duty
}

// NoteOn retunes voice ch and restarts its envelope.
func (m *Mixer) NoteOn(ch uint8, tuning uint8) {
	v := &m.voices[ch]
	v.Osc.Tuning = tuning
	v.Env.Reset(Attack, m.presets)
}

// NoteOff stops voice ch: immediately when it has no envelope, by entering
// the release phase otherwise.
func (m *Mixer) NoteOff(ch uint8) {
	v := &m.voices[ch]
	if v.Env.Type == PresetNone {
		v.Osc.Tuning = 0
	} else {
		v.Env.Reset(Release, m.presets)
	}
}

// SyncOscillators copies the phase of voice src into voice dst.
func (m *Mixer) SyncOscillators(dst, src uint8) {
	m.voices[dst].Osc.Phase = m.voices[src].Osc.Phase
}

func (m *Mixer) ResetOscillator(ch uint8) {
	m.voices[ch].Osc.Phase = 0
}

// SetADSR assigns an envelope preset to voice ch. The envelope is left ended,
// the voice stays silent until the next NoteOn. Presets out of the table are
// rejected.
func (m *Mixer) SetADSR(ch uint8, preset uint8) bool {
	if preset != PresetNone && !m.presets.Valid(preset) {
		return false
	}
	env := &m.voices[ch].Env
	env.Type = preset
	env.Reset(Attack, m.presets)
	env.Ended = true
	return true
}
