// Package tests provides helpers shared by the tests of the other packages:
// an instruction stream assembler, a few reference songs and golden file
// comparison.
package tests

import (
	"encoding/binary"
	"testing"

	"chiptune/hw/synth"
	"chiptune/hw/tracker"
)

// Asm assembles an instruction stream, byte by byte.
type Asm struct {
	buf   []byte
	order binary.ByteOrder
}

// NewAsm returns an assembler writing words in big endian order.
func NewAsm() *Asm {
	return &Asm{order: binary.BigEndian}
}

// LittleEndian switches the assembler to little endian words.
func (a *Asm) LittleEndian() *Asm {
	a.order = binary.LittleEndian
	return a
}

func (a *Asm) op(op tracker.Opcode, ch uint8, operands ...uint8) *Asm {
	a.buf = append(a.buf, tracker.Pack(op, ch))
	a.buf = append(a.buf, operands...)
	return a
}

func (a *Asm) word(v uint16) []uint8 {
	b := make([]uint8, 2)
	a.order.PutUint16(b, v)
	return b
}

// Addr returns the address of the next instruction.
func (a *Asm) Addr() uint16 { return uint16(len(a.buf)) }

func (a *Asm) NoAction() *Asm {
	return a.op(tracker.NoAction, 0)
}

func (a *Asm) SetTempo(bpm uint16) *Asm {
	return a.op(tracker.SetTempo, 0, a.word(bpm)...)
}

func (a *Asm) SetWave(ch uint8, wf synth.Waveform) *Asm {
	return a.op(tracker.SetWave, ch, uint8(wf))
}

func (a *Asm) SetVolume(ch, volume uint8) *Asm {
	return a.op(tracker.SetVolume, ch, volume)
}

func (a *Asm) SetGlobalVolume(volume uint8) *Asm {
	return a.op(tracker.SetGlobalVolume, 0, volume)
}

// Note returns the index of a note name such as "A4". It panics if name isn't
// a valid note.
func Note(name string) uint8 {
	n, err := tracker.ParseNote(name)
	if err != nil {
		panic(err)
	}
	return n
}

func (a *Asm) NoteOn(ch, note uint8) *Asm {
	return a.op(tracker.NoteOn, ch, note)
}

func (a *Asm) NoteOff(ch uint8) *Asm {
	return a.op(tracker.NoteOff, ch)
}

func (a *Asm) EndOfStream() *Asm {
	return a.op(tracker.EndOfStream, 0)
}

func (a *Asm) SoftwareReset() *Asm {
	return a.op(tracker.SoftwareReset, 0)
}

func (a *Asm) SyncOscillator(ch, src uint8) *Asm {
	return a.op(tracker.SyncOscillator, ch, src)
}

func (a *Asm) ResetOscillator(ch uint8) *Asm {
	return a.op(tracker.ResetOscillator, ch)
}

func (a *Asm) SetADSR(ch, preset uint8) *Asm {
	return a.op(tracker.SetADSR, ch, preset)
}

func (a *Asm) JumpInFile(addr uint16) *Asm {
	return a.op(tracker.JumpInFile, 0, a.word(addr)...)
}

func (a *Asm) SetDuty(ch, duty uint8) *Asm {
	return a.op(tracker.SetDuty, ch, duty)
}

func (a *Asm) DirectExec(count uint8) *Asm {
	return a.op(tracker.DirectExec, 0, count)
}

// SetADSRValues configures the envelope preset (selected by the channel
// nibble) with durations in milliseconds.
func (a *Asm) SetADSRValues(preset uint8, attack, decay uint16, sustain uint8, release uint16) *Asm {
	var operands []uint8
	operands = append(operands, a.word(attack)...)
	operands = append(operands, a.word(decay)...)
	operands = append(operands, sustain)
	operands = append(operands, a.word(release)...)
	return a.op(tracker.SetADSRValues, preset, operands...)
}

// Raw appends raw bytes, to build malformed streams.
func (a *Asm) Raw(b ...uint8) *Asm {
	a.buf = append(a.buf, b...)
	return a
}

func (a *Asm) Bytes() []byte { return a.buf }

// Program returns the assembled stream.
func (a *Asm) Program(tb testing.TB) *tracker.Program {
	tb.Helper()

	p, err := tracker.NewProgram(a.buf, a.order)
	if err != nil {
		tb.Fatal(err)
	}
	return p
}
