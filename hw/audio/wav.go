package audio

import (
	"fmt"

	"github.com/arl/blip/wave"
)

// Maximum number of 16-bit samples handed to the wave writer in one call.
const wavBlockLen = 2048

// WAVFile writes 16-bit PCM to a WAVE file at the host rate.
type WAVFile struct {
	w    *wave.Writer
	conv converter
}

func NewWAVFile(path string, srcRate, dstRate uint32, stereo bool) (*WAVFile, error) {
	w, err := wave.NewFile(path, int(dstRate))
	if err != nil {
		return nil, fmt.Errorf("create wave file: %w", err)
	}
	if stereo {
		w.EnableStereo()
	}
	return &WAVFile{
		w:    w,
		conv: newConverter(srcRate, dstRate, stereo),
	}, nil
}

func (wf *WAVFile) Write(samples []uint8) error {
	buf := wf.conv.convert(samples)
	for len(buf) > 0 {
		n := min(len(buf), wavBlockLen)
		if _, err := wf.w.Write(buf[:n]); err != nil {
			return fmt.Errorf("write wave file: %w", err)
		}
		buf = buf[n:]
	}
	return nil
}

// SampleCount returns the number of 16-bit samples written so far, counting
// both channels in stereo.
func (wf *WAVFile) SampleCount() int {
	return int(wf.w.SampleCount())
}

func (wf *WAVFile) Close() error {
	return wf.w.Close()
}
