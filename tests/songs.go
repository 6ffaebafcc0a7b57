package tests

import "chiptune/hw/synth"

// Demo assembles a short song, a few bars long at 8kHz, touching every
// opcode. It ends with EndOfStream.
func Demo() *Asm {
	a := NewAsm()

	a.SetTempo(480)
	a.SetGlobalVolume(255)
	a.SetADSRValues(1, 20, 60, 160, 120)
	a.SetADSRValues(2, 0, 30, 90, 40)

	a.DirectExec(8)
	a.SetWave(0, synth.Square)
	a.SetDuty(0, 64)
	a.SetVolume(0, 200)
	a.SetADSR(0, 1)
	a.SetWave(1, synth.Triangle)
	a.SetVolume(1, 255)
	a.SetWave(2, synth.Noise)
	a.SetVolume(2, 70)

	a.SetADSR(2, 2)
	a.SetWave(3, synth.Sawtooth)
	a.SetVolume(3, 120)
	a.SetADSR(3, 1)

	notes := []uint8{60, 64, 67, 72}
	for i, n := range notes {
		a.DirectExec(3)
		a.NoteOn(0, n)
		a.NoteOn(1, n-12)
		a.NoteOn(2, 100)
		a.NoAction()
		a.NoteOff(2)
		if i == 2 {
			a.SyncOscillator(1, 0)
			a.ResetOscillator(3)
		}
		a.NoteOn(3, n+7)
		a.NoAction()
		a.NoteOff(3)
	}

	a.NoteOff(0)
	a.NoteOff(1)
	a.SetWave(4, synth.Sine)
	a.SetVolume(4, 255)
	a.NoteOn(4, 69)
	for range 6 {
		a.NoAction()
	}
	a.NoteOff(4)
	a.SoftwareReset()
	a.NoAction()
	a.EndOfStream()
	return a
}

// Loop assembles a one-voice pattern looping forever through JumpInFile.
func Loop() *Asm {
	a := NewAsm()
	a.SetTempo(600)
	a.SetGlobalVolume(255)
	a.SetWave(0, synth.Square)
	a.SetVolume(0, 255)

	start := a.Addr()
	a.NoteOn(0, Note("A4"))
	a.NoAction()
	a.NoteOn(0, Note("A5"))
	a.NoAction()
	a.JumpInFile(start)
	return a
}

// Wrapping assembles a pattern without EndOfStream nor jump: the interpreter
// wraps to the start when the cursor reaches the end.
func Wrapping() *Asm {
	a := NewAsm()
	a.SetGlobalVolume(200)
	a.SetWave(0, synth.Sawtooth)
	a.SetVolume(0, 255)
	a.NoteOn(0, 57)
	a.NoteOff(0)
	return a
}
