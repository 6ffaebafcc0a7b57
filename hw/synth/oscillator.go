package synth

// Oscillator is a direct digital synthesis generator: an 8-bit phase
// accumulator stepped by a tuning word once per sample, mapped to an
// amplitude by the selected waveform.
type Oscillator struct {
	Waveform Waveform
	Duty     uint8 // pulse width for Square, output level for DC
	Tuning   uint8
	Phase    uint8
}

// Sample returns the amplitude at the current phase, without advancing it.
//
// The shared noise generator moves on every call, whatever the waveform, so
// that the noise sequence depends only on the number of voice samples taken.
func (o *Oscillator) Sample(rng *Xorshift) uint8 {
	rnd := rng.Next()

	p := o.Phase
	switch o.Waveform {
	case Sine:
		return sineTable[p]
	case Triangle:
		switch {
		case p < 64:
			return 127 - p*2
		case p < 192:
			return (p - 64) * 2
		default:
			return 255 - (p-192)*2
		}
	case Square:
		if p > o.Duty {
			return 0
		}
		return 0xFF
	case Sawtooth:
		return p + 127
	case Noise:
		return uint8(rnd)
	case DC:
		return o.Duty
	}
	return 127
}

// Advance moves the phase by one tuning word, wrapping modulo 256.
func (o *Oscillator) Advance() {
	o.Phase += o.Tuning
}
