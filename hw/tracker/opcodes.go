package tracker

//go:generate go tool stringer -type=Opcode -output=opcode_string.go

// Opcode is the command held in the high nibble of an instruction byte. The
// low nibble selects the channel the command applies to.
type Opcode uint8

const (
	NoAction        Opcode = 0x00 // no operand
	SetTempo        Opcode = 0x10 // <bpm:word>
	SetWave         Opcode = 0x20 // <waveform:byte>
	SetVolume       Opcode = 0x30 // <volume:byte>
	SetGlobalVolume Opcode = 0x40 // <volume:byte>
	NoteOn          Opcode = 0x50 // <note:byte>
	NoteOff         Opcode = 0x60 // no operand
	EndOfStream     Opcode = 0x70 // no operand
	SoftwareReset   Opcode = 0x80 // no operand
	SyncOscillator  Opcode = 0x90 // <source channel:byte>
	ResetOscillator Opcode = 0xA0 // no operand
	SetADSR         Opcode = 0xB0 // <preset:byte>
	JumpInFile      Opcode = 0xC0 // <address:word>
	SetDuty         Opcode = 0xD0 // <duty:byte>
	DirectExec      Opcode = 0xE0 // <count:byte>
	SetADSRValues   Opcode = 0xF0 // <attack ms:word> <decay ms:word> <sustain:byte> <release ms:word>
)

// Split splits an instruction byte into opcode and channel.
func Split(b uint8) (Opcode, uint8) {
	return Opcode(b & 0xF0), b & 0x0F
}

// Pack builds an instruction byte.
func Pack(op Opcode, ch uint8) uint8 {
	return uint8(op) | ch&0x0F
}

// OperandSize returns the number of operand bytes following op.
func OperandSize(op Opcode) int {
	switch op {
	case SetWave, SetVolume, SetGlobalVolume, NoteOn, SyncOscillator, SetADSR, SetDuty, DirectExec:
		return 1
	case SetTempo, JumpInFile:
		return 2
	case SetADSRValues:
		return 7
	}
	return 0
}
