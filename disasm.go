package main

import (
	"bufio"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"chiptune/emu"
	"chiptune/hw/tracker"
	"chiptune/song"
)

// listingStyles colors a disassembly listing on a terminal.
type listingStyles struct {
	addr  lipgloss.Style
	bytes lipgloss.Style
	instr lipgloss.Style
	err   lipgloss.Style
}

func newListingStyles() listingStyles {
	return listingStyles{
		addr:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		bytes: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		instr: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		err:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}

func (ls listingStyles) Addr(s string) string  { return ls.addr.Render(s) }
func (ls listingStyles) Bytes(s string) string { return ls.bytes.Render(s) }
func (ls listingStyles) Instr(s string) string { return ls.instr.Render(s) }
func (ls listingStyles) Error(s string) string { return ls.err.Render(s) }

func openProgram(path, wordOrder string, cfg emu.Config) (*song.Song, *tracker.Program, emu.Config) {
	if wordOrder != "" {
		cfg.Synth.WordOrder = wordOrder
	}
	cfg.Check()

	s, err := song.Open(path)
	checkf(err, "failed to open song")
	prog, err := s.Program(cfg.Synth.ByteOrder())
	checkf(err, "invalid song")
	return s, prog, cfg
}

func disasmMain(args Disasm, cfg emu.Config) {
	_, prog, _ := openProgram(args.SongPath, args.WordOrder, cfg)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if args.JSON {
		checkf(tracker.DisassembleJSON(prog, w), "disassembly failed")
		return
	}

	var style tracker.Styler = tracker.PlainStyle{}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		style = newListingStyles()
	}
	checkf(tracker.Disassemble(prog, w, style), "disassembly failed")
}

func infosMain(args Infos, cfg emu.Config) {
	s, _, cfg := openProgram(args.SongPath, args.WordOrder, cfg)
	checkf(s.PrintInfos(os.Stdout, cfg.Synth.ByteOrder()), "failed to decode song")
}
