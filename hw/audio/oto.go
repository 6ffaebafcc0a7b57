package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"chiptune/emu/log"
)

// An oto context can only be created once per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	otoOpts oto.NewContextOptions
)

func otoContext(rate uint32, channels int) (*oto.Context, error) {
	otoOnce.Do(func() {
		otoOpts = oto.NewContextOptions{
			SampleRate:   int(rate),
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   50 * time.Millisecond,
		}
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(&otoOpts)
		if otoErr != nil {
			return
		}
		<-ready
	})
	if otoErr != nil {
		return nil, otoErr
	}
	if otoOpts.SampleRate != int(rate) || otoOpts.ChannelCount != channels {
		return nil, fmt.Errorf("oto context already opened at %dHz/%dch", otoOpts.SampleRate, otoOpts.ChannelCount)
	}
	return otoCtx, nil
}

// OtoPlayer plays samples through oto. Writes block until the player has
// consumed the previous ones.
type OtoPlayer struct {
	player *oto.Player
	pw     *io.PipeWriter
	conv   converter
	buf    []byte
}

func NewOtoPlayer(srcRate, dstRate uint32, stereo bool) (*OtoPlayer, error) {
	conv := newConverter(srcRate, dstRate, stereo)
	ctx, err := otoContext(dstRate, conv.channels())
	if err != nil {
		return nil, fmt.Errorf("oto audio not available: %w", err)
	}

	pr, pw := io.Pipe()
	player := ctx.NewPlayer(pr)
	player.Play()

	log.ModAudio.InfoZ("oto player started").
		Uint32("rate", dstRate).
		Int("channels", conv.channels()).
		End()

	return &OtoPlayer{
		player: player,
		pw:     pw,
		conv:   conv,
	}, nil
}

func (p *OtoPlayer) Write(samples []uint8) error {
	out := p.conv.convert(samples)
	if len(out) == 0 {
		return nil
	}
	p.buf = p.buf[:0]
	for _, s := range out {
		p.buf = append(p.buf, byte(s), byte(s>>8))
	}
	_, err := p.pw.Write(p.buf)
	return err
}

// Close lets the player drain its buffer then stops it.
func (p *OtoPlayer) Close() error {
	p.pw.Close()
	for p.player.IsPlaying() {
		time.Sleep(5 * time.Millisecond)
	}
	return p.player.Close()
}
