package synth

// NoiseSeed is the power-up state of the noise generator.
const NoiseSeed uint32 = 0xB16B00B5

// Xorshift is a 32-bit xorshift pseudo-random generator (13, 17, 5). A single
// instance is shared by every voice of a Mixer, hence all noise voices play
// the same sequence.
type Xorshift struct {
	state uint32
}

func NewXorshift(seed uint32) Xorshift {
	return Xorshift{state: seed}
}

// Next steps the generator and returns the new state.
func (x *Xorshift) Next() uint32 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

func (x *Xorshift) State() uint32 { return x.state }
