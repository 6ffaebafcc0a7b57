package tracker

import (
	"errors"
	"fmt"

	"chiptune/hw/synth"
)

var (
	// ErrPastEnd is returned when decoding at or past the end of a stream.
	ErrPastEnd = errors.New("address past end of stream")

	// ErrTruncated is returned when an instruction's operands run past the
	// end of the stream.
	ErrTruncated = errors.New("truncated instruction")
)

// Instr is a decoded instruction. The set of implementations is closed, one
// per Opcode.
type Instr interface {
	Opcode() Opcode
	Channel() uint8
	instr()
}

type base struct{ Ch uint8 }

func (b base) Channel() uint8 { return b.Ch }
func (base) instr()           {}

type (
	NoActionInstr struct{ base }

	SetTempoInstr struct {
		base
		BPM uint16
	}

	SetWaveInstr struct {
		base
		Wave synth.Waveform
	}

	SetVolumeInstr struct {
		base
		Volume uint8
	}

	SetGlobalVolumeInstr struct {
		base
		Volume uint8
	}

	NoteOnInstr struct {
		base
		Note uint8
	}

	NoteOffInstr struct{ base }

	EndOfStreamInstr struct{ base }

	SoftwareResetInstr struct{ base }

	SyncOscillatorInstr struct {
		base
		Source uint8
	}

	ResetOscillatorInstr struct{ base }

	SetADSRInstr struct {
		base
		Preset uint8
	}

	JumpInFileInstr struct {
		base
		Addr uint16
	}

	SetDutyInstr struct {
		base
		Duty uint8
	}

	DirectExecInstr struct {
		base
		Count uint8
	}

	SetADSRValuesInstr struct {
		base
		Attack  uint16 // ms
		Decay   uint16 // ms
		Sustain uint8
		Release uint16 // ms
	}
)

func (NoActionInstr) Opcode() Opcode        { return NoAction }
func (SetTempoInstr) Opcode() Opcode        { return SetTempo }
func (SetWaveInstr) Opcode() Opcode         { return SetWave }
func (SetVolumeInstr) Opcode() Opcode       { return SetVolume }
func (SetGlobalVolumeInstr) Opcode() Opcode { return SetGlobalVolume }
func (NoteOnInstr) Opcode() Opcode          { return NoteOn }
func (NoteOffInstr) Opcode() Opcode         { return NoteOff }
func (EndOfStreamInstr) Opcode() Opcode     { return EndOfStream }
func (SoftwareResetInstr) Opcode() Opcode   { return SoftwareReset }
func (SyncOscillatorInstr) Opcode() Opcode  { return SyncOscillator }
func (ResetOscillatorInstr) Opcode() Opcode { return ResetOscillator }
func (SetADSRInstr) Opcode() Opcode         { return SetADSR }
func (JumpInFileInstr) Opcode() Opcode      { return JumpInFile }
func (SetDutyInstr) Opcode() Opcode         { return SetDuty }
func (DirectExecInstr) Opcode() Opcode      { return DirectExec }
func (SetADSRValuesInstr) Opcode() Opcode   { return SetADSRValues }

// Size returns the encoded size of in, opcode byte included.
func Size(in Instr) int {
	return 1 + OperandSize(in.Opcode())
}

// Decode decodes the instruction at addr.
func Decode(s Stream, addr uint16) (Instr, error) {
	if int(addr) >= s.Len() {
		return nil, ErrPastEnd
	}

	op, ch := Split(s.Byte(addr))
	if int(addr)+1+OperandSize(op) > s.Len() {
		return nil, fmt.Errorf("%w: %s at $%04X", ErrTruncated, op, addr)
	}

	b := base{Ch: ch}
	arg := addr + 1
	switch op {
	case SetTempo:
		return SetTempoInstr{b, s.Word(arg)}, nil
	case SetWave:
		return SetWaveInstr{b, synth.Waveform(s.Byte(arg))}, nil
	case SetVolume:
		return SetVolumeInstr{b, s.Byte(arg)}, nil
	case SetGlobalVolume:
		return SetGlobalVolumeInstr{b, s.Byte(arg)}, nil
	case NoteOn:
		return NoteOnInstr{b, s.Byte(arg) & 0x7F}, nil
	case NoteOff:
		return NoteOffInstr{b}, nil
	case EndOfStream:
		return EndOfStreamInstr{b}, nil
	case SoftwareReset:
		return SoftwareResetInstr{b}, nil
	case SyncOscillator:
		return SyncOscillatorInstr{b, s.Byte(arg) & 0x0F}, nil
	case ResetOscillator:
		return ResetOscillatorInstr{b}, nil
	case SetADSR:
		return SetADSRInstr{b, s.Byte(arg)}, nil
	case JumpInFile:
		return JumpInFileInstr{b, s.Word(arg)}, nil
	case SetDuty:
		return SetDutyInstr{b, s.Byte(arg)}, nil
	case DirectExec:
		return DirectExecInstr{b, s.Byte(arg)}, nil
	case SetADSRValues:
		return SetADSRValuesInstr{
			base:    b,
			Attack:  s.Word(arg),
			Decay:   s.Word(arg + 2),
			Sustain: s.Byte(arg + 4),
			Release: s.Word(arg + 5),
		}, nil
	}
	return NoActionInstr{b}, nil
}

// Format returns the assembly-like text of in.
func Format(in Instr) string {
	mnemonic := fmt.Sprintf("%-15s ch%-2d", in.Opcode(), in.Channel())
	switch in := in.(type) {
	case SetTempoInstr:
		return fmt.Sprintf("%s bpm=%d", mnemonic, in.BPM)
	case SetWaveInstr:
		return fmt.Sprintf("%s wave=%s", mnemonic, in.Wave)
	case SetVolumeInstr:
		return fmt.Sprintf("%s volume=%d", mnemonic, in.Volume)
	case SetGlobalVolumeInstr:
		return fmt.Sprintf("%s volume=%d", mnemonic, in.Volume)
	case NoteOnInstr:
		return fmt.Sprintf("%s note=%d (%s)", mnemonic, in.Note, NoteName(in.Note))
	case SyncOscillatorInstr:
		return fmt.Sprintf("%s source=ch%d", mnemonic, in.Source)
	case SetADSRInstr:
		return fmt.Sprintf("%s preset=%d", mnemonic, in.Preset)
	case JumpInFileInstr:
		return fmt.Sprintf("%s addr=$%04X", mnemonic, in.Addr)
	case SetDutyInstr:
		return fmt.Sprintf("%s duty=%d", mnemonic, in.Duty)
	case DirectExecInstr:
		return fmt.Sprintf("%s count=%d", mnemonic, in.Count)
	case SetADSRValuesInstr:
		return fmt.Sprintf("%s attack=%dms decay=%dms sustain=%d release=%dms",
			mnemonic, in.Attack, in.Decay, in.Sustain, in.Release)
	}
	return mnemonic
}
