package audio

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"chiptune/emu/log"
)

const (
	sdlFormat     = sdl.AUDIO_S16LSB
	sdlBufferSize = 2048

	// Queue length, in host samples per channel, above which Write waits for
	// the device to drain.
	sdlMaxQueued = 8192
)

// SDLPlayer plays samples on the default SDL audio device.
type SDLPlayer struct {
	dev  sdl.AudioDeviceID
	conv converter

	// Bytes per host sample frame.
	frameSize uint32
}

func NewSDLPlayer(srcRate, dstRate uint32, stereo bool) (*SDLPlayer, error) {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("sdl audio init: %w", err)
	}

	conv := newConverter(srcRate, dstRate, stereo)
	spec := &sdl.AudioSpec{
		Freq:     int32(dstRate),
		Format:   sdlFormat,
		Channels: uint8(conv.channels()),
		Samples:  sdlBufferSize,
	}
	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_AUDIO)
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	sdl.PauseAudioDevice(dev, false)

	log.ModAudio.InfoZ("sdl audio device opened").
		Uint32("rate", dstRate).
		Int("channels", conv.channels()).
		End()

	return &SDLPlayer{
		dev:       dev,
		conv:      conv,
		frameSize: uint32(2 * conv.channels()),
	}, nil
}

func (p *SDLPlayer) Write(samples []uint8) error {
	out := p.conv.convert(samples)
	if len(out) == 0 {
		return nil
	}

	// SDL keeps its own copy of the queued data.
	if err := sdl.QueueAudio(p.dev, int16Bytes(out)); err != nil {
		log.ModAudio.DebugZ("failed to queue audio buffer").Error("err", err).End()
		return err
	}

	for sdl.GetQueuedAudioSize(p.dev) > sdlMaxQueued*p.frameSize {
		time.Sleep(5 * time.Millisecond)
	}
	return nil
}

// Close waits for queued audio to be played then releases the device.
func (p *SDLPlayer) Close() error {
	for sdl.GetQueuedAudioSize(p.dev) > 0 {
		time.Sleep(5 * time.Millisecond)
	}
	sdl.CloseAudioDevice(p.dev)
	sdl.QuitSubSystem(sdl.INIT_AUDIO)
	return nil
}
