package tracker

import (
	"chiptune/emu/log"
	"chiptune/hw/synth"
)

// DefaultBPM is the tempo the interpreter starts with.
const DefaultBPM = 300

// A Tracer receives every instruction executed by an Interpreter. tick is the
// number of sample periods elapsed since the last Reset.
type Tracer interface {
	Trace(tick uint64, addr uint16, in Instr)
}

type Config struct {
	SampleRate uint32
	DefaultBPM uint16

	// FreqTable maps note numbers to tuning words. If nil the table is
	// computed for SampleRate.
	FreqTable *synth.FreqTable

	// OnStreamEnd is called once, when EndOfStream is executed.
	OnStreamEnd func()

	Trace Tracer
}

// Interpreter executes an instruction stream against a Mixer. Instructions
// are fetched in bursts paced by the tempo clock, itself driven by the sample
// clock through TempoTick.
type Interpreter struct {
	mixer  *synth.Mixer
	stream Stream
	cfg    Config
	freqs  synth.FreqTable

	tempo  synth.SubTimer
	bpm    uint16
	cursor int
	ticks  uint64
	loops  int
	halted bool
}

// New creates an Interpreter reading s and driving m. The interpreter
// registers itself as the sequencer of m.
func New(m *synth.Mixer, s Stream, cfg Config) *Interpreter {
	if cfg.DefaultBPM == 0 {
		cfg.DefaultBPM = DefaultBPM
	}
	it := &Interpreter{
		mixer:  m,
		stream: s,
		cfg:    cfg,
	}
	if cfg.FreqTable != nil {
		it.freqs = *cfg.FreqTable
	} else {
		it.freqs = synth.NewFreqTable(cfg.SampleRate)
	}
	if !it.SetTempo(cfg.DefaultBPM) {
		it.SetTempo(DefaultBPM)
	}
	m.SetSequencer(it)
	return it
}

// BpmToTicks converts a tempo in beats per minute into a tempo clock compare
// value at sampleRate. It reports false for tempos under 60 bpm, which the
// conversion can't represent.
func BpmToTicks(sampleRate uint32, bpm uint16) (uint32, bool) {
	bps := uint32(bpm) / 60
	if bps == 0 {
		return 0, false
	}
	ticks := sampleRate / bps
	if ticks == 0 {
		return 0, true
	}
	return ticks - 1, true
}

// SetTempo reprograms the tempo clock. Tempos under 60 bpm are ignored.
func (it *Interpreter) SetTempo(bpm uint16) bool {
	ticks, ok := BpmToTicks(it.cfg.SampleRate, bpm)
	if !ok {
		log.ModTracker.WarnZ("unsupported tempo, ignored").Uint16("bpm", bpm).End()
		return false
	}
	it.bpm = bpm
	it.tempo.SetCompare(ticks)
	return true
}

// Reset rewinds the stream and restarts the tempo clock period. The current
// tempo is kept.
func (it *Interpreter) Reset() {
	it.cursor = 0
	it.ticks = 0
	it.loops = 0
	it.halted = false
	it.tempo.Reset(false)
}

func (it *Interpreter) Cursor() int    { return it.cursor }
func (it *Interpreter) Loops() int     { return it.loops }
func (it *Interpreter) Halted() bool   { return it.halted }
func (it *Interpreter) Tempo() uint16  { return it.bpm }
func (it *Interpreter) Ticks() uint64  { return it.ticks }
func (it *Interpreter) Stream() Stream { return it.stream }

// TempoTick implements synth.Sequencer. On every firing of the tempo clock,
// it executes up to one instruction per voice, stopping early after a
// DirectExec burst. The stream loops when the cursor reaches its end.
func (it *Interpreter) TempoTick() bool {
	if it.halted {
		return false
	}
	if !it.tempo.Tick() {
		it.ticks++
		return true
	}

	if it.cursor >= it.stream.Len() {
		it.cursor = 0
		it.loops++
		log.ModTracker.DebugZ("stream wrapped").Int("loops", it.loops).End()
	}

	for range it.mixer.Voices() {
		if it.cursor >= it.stream.Len() {
			break
		}
		if more, _ := it.fetchExecute(); more || it.halted {
			break
		}
	}
	it.ticks++
	return !it.halted
}

// FetchExecute executes the instruction at the cursor. It reports true if
// that instruction was a DirectExec, meaning a whole burst has already been
// executed, or if the stream is malformed at the cursor.
func (it *Interpreter) FetchExecute() bool {
	more, _ := it.fetchExecute()
	return more
}

// fetchExecute is FetchExecute, ok is false when nothing could be fetched.
func (it *Interpreter) fetchExecute() (more, ok bool) {
	if it.halted {
		return false, true
	}

	addr := uint16(it.cursor)
	if it.cursor >= it.stream.Len() {
		log.ModTracker.WarnZ("fetch past end of stream").Int("cursor", it.cursor).End()
		it.cursor = it.stream.Len()
		return true, false
	}

	in, err := Decode(it.stream, addr)
	if err != nil {
		log.ModTracker.WarnZ("malformed stream").Hex16("addr", addr).Error("err", err).End()
		it.cursor = it.stream.Len()
		return true, false
	}
	it.cursor += Size(in)

	if it.cfg.Trace != nil {
		it.cfg.Trace.Trace(it.ticks, addr, in)
	}
	return it.execute(addr, in), true
}

func (it *Interpreter) voice(in Instr) (uint8, bool) {
	ch := in.Channel()
	if int(ch) >= it.mixer.Voices() {
		log.ModTracker.DebugZ("channel out of range, ignored").
			Stringer("op", in.Opcode()).
			Uint8("ch", ch).
			End()
		return 0, false
	}
	return ch, true
}

func (it *Interpreter) execute(addr uint16, in Instr) bool {
	m := it.mixer

	switch in := in.(type) {
	case NoActionInstr:
	case SetTempoInstr:
		it.SetTempo(in.BPM)
	case SetWaveInstr:
		if ch, ok := it.voice(in); ok {
			m.SetWave(ch, in.Wave)
		}
	case SetVolumeInstr:
		if ch, ok := it.voice(in); ok {
			m.SetVolume(ch, in.Volume)
		}
	case SetGlobalVolumeInstr:
		m.SetGlobalVolume(in.Volume)
	case NoteOnInstr:
		if ch, ok := it.voice(in); ok {
			m.NoteOn(ch, it.freqs[in.Note])
		}
	case NoteOffInstr:
		if ch, ok := it.voice(in); ok {
			m.NoteOff(ch)
		}
	case EndOfStreamInstr:
		it.halted = true
		log.ModTracker.InfoZ("end of stream").Hex16("addr", addr).Uint64("tick", it.ticks).End()
		if it.cfg.OnStreamEnd != nil {
			it.cfg.OnStreamEnd()
		}
	case SoftwareResetInstr:
		m.Reset()
	case SyncOscillatorInstr:
		if ch, ok := it.voice(in); ok {
			if int(in.Source) >= m.Voices() {
				log.ModTracker.DebugZ("sync source out of range, ignored").Uint8("src", in.Source).End()
				break
			}
			m.SyncOscillators(ch, in.Source)
		}
	case ResetOscillatorInstr:
		if ch, ok := it.voice(in); ok {
			m.ResetOscillator(ch)
		}
	case SetADSRInstr:
		if ch, ok := it.voice(in); ok {
			if !m.SetADSR(ch, in.Preset) {
				log.ModTracker.DebugZ("invalid envelope preset, ignored").Uint8("preset", in.Preset).End()
			}
		}
	case JumpInFileInstr:
		if in.Addr <= addr {
			it.loops++
		}
		it.cursor = int(in.Addr)
	case SetDutyInstr:
		if ch, ok := it.voice(in); ok {
			m.SetDuty(ch, in.Duty)
		}
	case DirectExecInstr:
		for range in.Count {
			if it.halted {
				break
			}
			if _, ok := it.fetchExecute(); !ok {
				break
			}
		}
		return true
	case SetADSRValuesInstr:
		// The channel nibble selects the preset being configured.
		ok := m.Presets().Configure(in.Channel(), in.Attack, in.Decay, in.Sustain, in.Release)
		if !ok {
			log.ModTracker.DebugZ("invalid envelope preset, ignored").Uint8("preset", in.Channel()).End()
		}
	}
	return false
}
