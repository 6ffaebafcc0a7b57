// Package song reads song files: raw instruction streams, as stored in the
// flash memory of the synthesizer.
package song

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"chiptune/emu/log"
	"chiptune/hw/tracker"
)

var ErrEmpty = errors.New("empty song")

type Song struct {
	Name string
	Data []byte
}

// Open loads a song from file.
func Open(path string) (*Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	song := &Song{Name: filepath.Base(path)}
	if _, err := song.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return song, nil
}

// ReadFrom implements io.ReaderFrom interface. A song holds at most
// tracker.MaxStreamSize bytes.
func (s *Song) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(io.LimitReader(r, tracker.MaxStreamSize+1))
	if err != nil {
		return int64(len(buf)), err
	}
	if len(buf) == 0 {
		return 0, ErrEmpty
	}
	if len(buf) > tracker.MaxStreamSize {
		return int64(len(buf)), fmt.Errorf("song too large, max %d bytes", tracker.MaxStreamSize)
	}

	s.Data = buf
	log.ModSong.DebugZ("song loaded").String("name", s.Name).Int("size", len(buf)).End()
	return int64(len(buf)), nil
}

// Program returns the instruction stream of the song, reading 16-bit operands
// in the given byte order.
func (s *Song) Program(order binary.ByteOrder) (*tracker.Program, error) {
	return tracker.NewProgram(s.Data, order)
}

// Infos summarizes the content of a song.
type Infos struct {
	Size         int
	Instructions int
	Opcodes      map[tracker.Opcode]int

	// Channels lists the channels addressed by voice instructions.
	Channels []uint8

	// Tempos lists the tempos set by SetTempo, in order of appearance.
	Tempos []uint16

	// Notes lists the distinct notes played by NoteOn, in ascending order.
	Notes []uint8

	EndOfStream bool  // the last instruction is EndOfStream
	Loops       bool  // the song jumps backwards
	Err         error // decoding error, if the stream is truncated
}

// voiceOps are the opcodes whose channel nibble selects a voice.
var voiceOps = []tracker.Opcode{
	tracker.SetWave,
	tracker.SetVolume,
	tracker.NoteOn,
	tracker.NoteOff,
	tracker.SyncOscillator,
	tracker.ResetOscillator,
	tracker.SetADSR,
	tracker.SetDuty,
}

// Infos decodes the whole song linearly.
func (s *Song) Infos(order binary.ByteOrder) (Infos, error) {
	p, err := s.Program(order)
	if err != nil {
		return Infos{}, err
	}

	infos := Infos{
		Size:    p.Len(),
		Opcodes: make(map[tracker.Opcode]int),
	}
	var (
		chans [16]bool
		notes [128]bool
		last  tracker.Instr
	)
	infos.Err = tracker.Walk(p, func(addr uint16, in tracker.Instr) bool {
		infos.Instructions++
		infos.Opcodes[in.Opcode()]++
		if slices.Contains(voiceOps, in.Opcode()) {
			chans[in.Channel()] = true
		}
		switch in := in.(type) {
		case tracker.SetTempoInstr:
			infos.Tempos = append(infos.Tempos, in.BPM)
		case tracker.NoteOnInstr:
			notes[in.Note] = true
		case tracker.JumpInFileInstr:
			if in.Addr <= addr {
				infos.Loops = true
			}
		}
		last = in
		return true
	})
	for ch, used := range chans {
		if used {
			infos.Channels = append(infos.Channels, uint8(ch))
		}
	}
	for n, used := range notes {
		if used {
			infos.Notes = append(infos.Notes, uint8(n))
		}
	}
	infos.EndOfStream = last != nil && last.Opcode() == tracker.EndOfStream
	return infos, nil
}

// PrintInfos writes a human readable summary of the song to w.
func (s *Song) PrintInfos(w io.Writer, order binary.ByteOrder) error {
	infos, err := s.Infos(order)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "name:          %s\n", s.Name)
	fmt.Fprintf(w, "size:          %d bytes\n", infos.Size)
	fmt.Fprintf(w, "instructions:  %d\n", infos.Instructions)
	fmt.Fprintf(w, "channels:      %v\n", infos.Channels)
	fmt.Fprintf(w, "tempos:        %v\n", infos.Tempos)
	names := make([]string, len(infos.Notes))
	for i, n := range infos.Notes {
		names[i] = tracker.NoteName(n)
	}
	fmt.Fprintf(w, "notes:         %s\n", strings.Join(names, " "))
	fmt.Fprintf(w, "end of stream: %t\n", infos.EndOfStream)
	fmt.Fprintf(w, "loops:         %t\n", infos.Loops)
	if infos.Err != nil {
		fmt.Fprintf(w, "error:         %s\n", infos.Err)
	}
	fmt.Fprintln(w, "opcodes:")
	for _, op := range slices.Sorted(maps.Keys(infos.Opcodes)) {
		fmt.Fprintf(w, "  %-16s %d\n", op, infos.Opcodes[op])
	}
	return nil
}
