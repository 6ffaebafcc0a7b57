package tracker

import (
	"io"

	"github.com/go-faster/jx"
)

// JSONTracer writes executed instructions as JSON lines:
//
//	{"tick":1600,"addr":12,"op":"NoteOn","ch":0,"note":60,"name":"C4"}
type JSONTracer struct {
	w   io.Writer
	enc jx.Encoder
	err error
}

func NewJSONTracer(w io.Writer) *JSONTracer {
	return &JSONTracer{w: w}
}

func (t *JSONTracer) Trace(tick uint64, addr uint16, in Instr) {
	if t.err != nil {
		return
	}

	t.enc.Reset()
	t.enc.Obj(func(e *jx.Encoder) {
		e.Field("tick", func(e *jx.Encoder) { e.UInt64(tick) })
		e.Field("addr", func(e *jx.Encoder) { e.UInt16(addr) })
		encodeInstr(e, in)
	})
	_, t.err = t.w.Write(append(t.enc.Bytes(), '\n'))
}

// Err returns the first write error encountered, after which nothing more is
// written.
func (t *JSONTracer) Err() error { return t.err }

// encodeInstr writes the fields describing in into the current object.
func encodeInstr(e *jx.Encoder, in Instr) {
	e.Field("op", func(e *jx.Encoder) { e.Str(in.Opcode().String()) })
	e.Field("ch", func(e *jx.Encoder) { e.UInt8(in.Channel()) })

	u8 := func(name string, v uint8) {
		e.Field(name, func(e *jx.Encoder) { e.UInt8(v) })
	}
	u16 := func(name string, v uint16) {
		e.Field(name, func(e *jx.Encoder) { e.UInt16(v) })
	}

	switch in := in.(type) {
	case SetTempoInstr:
		u16("bpm", in.BPM)
	case SetWaveInstr:
		e.Field("wave", func(e *jx.Encoder) { e.Str(in.Wave.String()) })
	case SetVolumeInstr:
		u8("volume", in.Volume)
	case SetGlobalVolumeInstr:
		u8("volume", in.Volume)
	case NoteOnInstr:
		u8("note", in.Note)
		e.Field("name", func(e *jx.Encoder) { e.Str(NoteName(in.Note)) })
	case SyncOscillatorInstr:
		u8("source", in.Source)
	case SetADSRInstr:
		u8("preset", in.Preset)
	case JumpInFileInstr:
		u16("target", in.Addr)
	case SetDutyInstr:
		u8("duty", in.Duty)
	case DirectExecInstr:
		u8("count", in.Count)
	case SetADSRValuesInstr:
		u16("attack", in.Attack)
		u16("decay", in.Decay)
		u8("sustain", in.Sustain)
		u16("release", in.Release)
	}
}
