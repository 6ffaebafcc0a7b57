package tracker

import (
	"fmt"
	"strconv"
	"strings"
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName returns the scientific pitch name of a note index, 60 being C4 and
// 69 A4. Notes below C0 have octave -1.
func NoteName(note uint8) string {
	note &= 0x7F
	return noteNames[note%12] + strconv.Itoa(int(note)/12-1)
}

// ParseNote is the inverse of NoteName. Sharps are written with '#' or 's'
// (C#4 or Cs4), note letters are case insensitive.
func ParseNote(name string) (uint8, error) {
	if name == "" {
		return 0, fmt.Errorf("empty note name")
	}

	s := strings.ToUpper(name[:1]) + name[1:]
	if len(s) > 1 && s[1] == 's' {
		s = s[:1] + "#" + s[2:]
	}
	for i := len(noteNames) - 1; i >= 0; i-- {
		rest, ok := strings.CutPrefix(s, noteNames[i])
		if !ok {
			continue
		}
		octave, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("invalid octave in note %q", name)
		}
		n := (octave+1)*12 + i
		if n < 0 || n > 127 {
			return 0, fmt.Errorf("note %q out of range", name)
		}
		return uint8(n), nil
	}
	return 0, fmt.Errorf("unknown note %q", name)
}
