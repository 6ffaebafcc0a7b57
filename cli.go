package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"chiptune/emu"
	"chiptune/emu/log"
	"chiptune/hw/synth"
)

type mode byte

const (
	renderMode  mode = iota // Render a song into a file
	playMode                // Play a song
	disasmMode              // Disassemble a song
	infosMode               // Show song infos
	versionMode             // Show chiptune version
)

type (
	CLI struct {
		Render  Render  `cmd:"" help:"Render a song to a raw PCM or WAV file."`
		Play    Play    `cmd:"" help:"Play a song on the audio device."`
		Disasm  Disasm  `cmd:"" help:"Disassemble a song."`
		Infos   Infos   `cmd:"" help:"Show song infos."`
		Version Version `cmd:"" help:"Show chiptune version."`

		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		Config string     `help:"${config_help}" type:"path" placeholder:"FILE"`

		mode mode
	}

	// SynthFlags override the synthesizer configuration.
	SynthFlags struct {
		Rate      uint32 `name:"rate" help:"Synthesizer sample rate in Hz."`
		Voices    int    `name:"voices" help:"Number of voices."`
		WordOrder string `name:"word-order" help:"${word_order_help}" placeholder:"big|little"`
		Truncate  bool   `name:"truncate" help:"Use the truncating volume scaling."`
	}

	Limits struct {
		Loops    int           `name:"loops" help:"Stop after the song looped N times." placeholder:"N"`
		Duration time.Duration `name:"duration" help:"Stop after that much audio (e.g. 90s)."`
	}

	Render struct {
		SongPath string   `arg:"" name:"/path/to/song" help:"Song file." type:"existingfile"`
		Output   string   `name:"output" short:"o" help:"${output_help}" required:"" placeholder:"FILE|-"`
		Trace    *outfile `name:"trace" help:"Write executed instructions as JSON lines." placeholder:"FILE|stdout|stderr"`
		Stereo   bool     `name:"stereo" help:"Write a stereo WAV file."`

		Synth  SynthFlags `embed:""`
		Limits Limits     `embed:""`
	}

	Play struct {
		SongPath string `arg:"" name:"/path/to/song" help:"Song file." type:"existingfile"`
		Backend  string `name:"backend" help:"Audio backend, sdl or oto." placeholder:"sdl|oto"`

		Synth  SynthFlags `embed:""`
		Limits Limits     `embed:""`
	}

	Disasm struct {
		SongPath  string `arg:"" name:"/path/to/song" help:"Song file." type:"existingfile"`
		JSON      bool   `name:"json" help:"Output one JSON object per instruction."`
		WordOrder string `name:"word-order" help:"${word_order_help}" placeholder:"big|little"`
	}

	Infos struct {
		SongPath  string `arg:"" name:"/path/to/song" help:"Song file." type:"existingfile"`
		WordOrder string `name:"word-order" help:"${word_order_help}" placeholder:"big|little"`
	}

	Version struct{}
)

var vars = kong.Vars{
	"log_help":        "Enable logging for specified modules.",
	"config_help":     "Configuration file (default: chiptune/config.toml in the user config directory).",
	"output_help":     "Output file. A .wav extension writes a WAV file at the output sample rate, anything else raw unsigned 8-bit PCM. '-' writes raw PCM to stdout.",
	"word_order_help": "Byte order of 16-bit operands in the song.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("chiptune"),
		kong.Description("8-bit tracker synthesizer."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	cmd, _, _ := strings.Cut(ctx.Command(), " ")
	switch cmd {
	case "render":
		cfg.mode = renderMode
	case "play":
		cfg.mode = playMode
	case "disasm":
		cfg.mode = disasmMode
	case "infos":
		cfg.mode = infosMode
	case "version":
		cfg.mode = versionMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if ctx.Command() == "" {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

// apply overrides cfg with the flags that have been set.
func (sf SynthFlags) apply(cfg *emu.Config) {
	if sf.Rate != 0 {
		cfg.Synth.SampleRate = sf.Rate
	}
	if sf.Voices != 0 {
		cfg.Synth.Voices = sf.Voices
	}
	if sf.WordOrder != "" {
		cfg.Synth.WordOrder = sf.WordOrder
	}
	if sf.Truncate {
		cfg.Synth.ScaleMode = synth.ScaleTruncate
	}
}

func (l Limits) limits() emu.Limits {
	return emu.Limits{
		Loops:    l.Loops,
		Duration: l.Duration,
	}
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	return enableLogs(tok.Value.(string))
}

// enableLogs enables debug logs for a comma-separated list of modules, or
// disables logging altogether with 'no'.
func enableLogs(list string) error {
	var mask log.ModuleMask
	nolog := false
	allLogs := false

	for _, v := range strings.Split(list, ",") {
		switch v {
		case "":
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		mask = log.ModuleMaskAll
	}

	log.EnableDebugModules(mask)
	return nil
}

type outfile struct {
	w     io.Writer
	name  string
	close func() error
}

// Decode decodes FILE|stdout|stderr into an io.WriteCloser
// that writes to that file.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	f.name = tok.Value.(string)
	f.close = func() error { return nil }

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.w = fd
		f.close = fd.Close
	}
	return nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error                { return f.close() }

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
