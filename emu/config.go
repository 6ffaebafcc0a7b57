package emu

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"chiptune/emu/log"
	"chiptune/hw"
	"chiptune/hw/synth"
	"chiptune/hw/tracker"
)

type Config struct {
	Synth   SynthConfig   `toml:"synth"`
	Output  OutputConfig  `toml:"output"`
	General GeneralConfig `toml:"general"`

	Trace tracker.Tracer `toml:"-"`
}

type SynthConfig struct {
	SampleRate uint32          `toml:"sample_rate"`
	Voices     int             `toml:"voices"`
	Presets    int             `toml:"presets"`
	DefaultBPM uint16          `toml:"default_bpm"`
	ScaleMode  synth.ScaleMode `toml:"scale_mode"`
	WordOrder  string          `toml:"word_order"`
}

type OutputConfig struct {
	// Host sample rate of the wav, sdl and oto outputs.
	SampleRate uint32 `toml:"sample_rate"`
	Backend    string `toml:"backend"`
	Stereo     bool   `toml:"stereo"`

	// Samples rendered per chunk sent to the output.
	Chunk int `toml:"chunk"`
}

type GeneralConfig struct {
	// Comma separated list of modules to enable debug logs for.
	Log string `toml:"log"`
}

const (
	BackendSDL = "sdl"
	BackendOto = "oto"

	WordOrderBig    = "big"
	WordOrderLittle = "little"

	defaultHostRate = 44100
	defaultChunk    = 512
	maxChunk        = 1 << 16
	minHostRate     = 8000
	maxHostRate     = 192000
)

func DefaultConfig() Config {
	return Config{
		Synth: SynthConfig{
			SampleRate: hw.DefaultConfig.SampleRate,
			Voices:     hw.DefaultConfig.Voices,
			Presets:    hw.DefaultConfig.Presets,
			DefaultBPM: hw.DefaultConfig.DefaultBPM,
			ScaleMode:  hw.DefaultConfig.ScaleMode,
			WordOrder:  WordOrderBig,
		},
		Output: OutputConfig{
			SampleRate: defaultHostRate,
			Backend:    BackendSDL,
			Chunk:      defaultChunk,
		},
	}
}

// Check replaces invalid values with their defaults, logging a warning for
// each of them.
func (cfg *Config) Check() {
	def := DefaultConfig()

	scfg := &cfg.Synth
	if scfg.SampleRate < hw.MinSampleRate || scfg.SampleRate > hw.MaxSampleRate {
		log.ModEmu.Warnf("Invalid synth sample rate %dHz, fallback to %dHz", scfg.SampleRate, def.Synth.SampleRate)
		scfg.SampleRate = def.Synth.SampleRate
	}
	if scfg.Voices < 1 || scfg.Voices > synth.MaxVoices {
		log.ModEmu.Warnf("Invalid number of voices %d, fallback to %d", scfg.Voices, def.Synth.Voices)
		scfg.Voices = def.Synth.Voices
	}
	if scfg.Presets < 1 || scfg.Presets > synth.MaxPresets {
		log.ModEmu.Warnf("Invalid number of envelope presets %d, fallback to %d", scfg.Presets, def.Synth.Presets)
		scfg.Presets = def.Synth.Presets
	}
	if _, ok := tracker.BpmToTicks(scfg.SampleRate, scfg.DefaultBPM); !ok {
		if scfg.DefaultBPM != 0 {
			log.ModEmu.Warnf("Invalid default tempo %d bpm, fallback to %d bpm", scfg.DefaultBPM, def.Synth.DefaultBPM)
		}
		scfg.DefaultBPM = def.Synth.DefaultBPM
	}
	switch scfg.WordOrder {
	case WordOrderBig, WordOrderLittle:
	case "":
		scfg.WordOrder = WordOrderBig
	default:
		log.ModEmu.Warnf("Invalid word order %q, fallback to %q", scfg.WordOrder, WordOrderBig)
		scfg.WordOrder = WordOrderBig
	}

	ocfg := &cfg.Output
	if ocfg.SampleRate == 0 {
		ocfg.SampleRate = def.Output.SampleRate
	} else if ocfg.SampleRate < minHostRate || ocfg.SampleRate > maxHostRate {
		log.ModEmu.Warnf("Invalid output sample rate %dHz, fallback to %dHz", ocfg.SampleRate, def.Output.SampleRate)
		ocfg.SampleRate = def.Output.SampleRate
	}
	switch ocfg.Backend {
	case BackendSDL, BackendOto:
	case "":
		ocfg.Backend = def.Output.Backend
	default:
		log.ModEmu.Warnf("Invalid audio backend %q, fallback to %q", ocfg.Backend, def.Output.Backend)
		ocfg.Backend = def.Output.Backend
	}
	if ocfg.Chunk <= 0 || ocfg.Chunk > maxChunk {
		if ocfg.Chunk != 0 {
			log.ModEmu.Warnf("Invalid chunk size %d, fallback to %d", ocfg.Chunk, def.Output.Chunk)
		}
		ocfg.Chunk = def.Output.Chunk
	}
}

// HW returns the synthesizer hardware configuration.
func (scfg SynthConfig) HW() hw.Config {
	return hw.Config{
		SampleRate: scfg.SampleRate,
		Voices:     scfg.Voices,
		Presets:    scfg.Presets,
		DefaultBPM: scfg.DefaultBPM,
		ScaleMode:  scfg.ScaleMode,
	}
}

// ByteOrder returns the order of 16-bit operands in instruction streams.
func (scfg SynthConfig) ByteOrder() binary.ByteOrder {
	if scfg.WordOrder == WordOrderLittle {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// ConfigDir returns the chiptune directory in the user config directory,
// creating it if needed.
var ConfigDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Fatalf("failed to locate user config directory: %v", err)
	}
	dir = filepath.Join(dir, "chiptune")
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})

const cfgFilename = "config.toml"

// DefaultConfigPath is the path of the config file in ConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), cfgFilename)
}

// LoadConfigOrDefault loads the configuration at path, or at
// DefaultConfigPath if path is empty. Values missing from the file keep their
// defaults. A missing file is not an error.
func LoadConfigOrDefault(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		log.ModEmu.DebugZ("no config file, using defaults").String("path", path).End()
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}
	for _, key := range md.Undecoded() {
		log.ModEmu.Warnf("Unknown config key %q in %s", key.String(), path)
	}
	cfg.Check()
	return cfg, nil
}

// SaveConfig writes cfg at path, or at DefaultConfigPath if path is empty.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, buf, 0644)
}
