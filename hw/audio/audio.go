// Package audio provides the sinks receiving the synthesizer output: raw PCM
// and WAV files, and live playback devices.
package audio

import (
	"io"
	"unsafe"

	"github.com/arl/blip"
)

// Output receives chunks of unsigned 8-bit PCM at the synthesizer rate.
type Output interface {
	Write(samples []uint8) error
	Close() error
}

// RawWriter writes samples as is, one byte per sample.
type RawWriter struct {
	w io.Writer
}

func NewRawWriter(w io.Writer) *RawWriter {
	return &RawWriter{w: w}
}

func (rw *RawWriter) Write(samples []uint8) error {
	_, err := rw.w.Write(samples)
	return err
}

// Close closes the underlying writer, if it's an io.Closer.
func (rw *RawWriter) Close() error {
	if c, ok := rw.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

const (
	// Upper bound of input samples processed per blip frame.
	maxFrameLen = 512

	// Amplitude of a full scale 8-bit step in the 16-bit output. It leaves
	// headroom for the band-limited step overshoot.
	gain = 192
)

// Resampler converts unsigned 8-bit samples at the synthesizer rate into
// band-limited signed 16-bit samples at the host rate. Each input sample
// lasts one blip clock.
type Resampler struct {
	buf   *blip.Buffer
	prev  int32
	out   []int16
	frame int

	srcRate, dstRate uint32
}

func NewResampler(srcRate, dstRate uint32) *Resampler {
	// Keep clock times of a frame, scaled by the blip time factor, within
	// 63 bits.
	frame := int(uint64(1024) * uint64(srcRate) / uint64(dstRate))
	frame = max(1, min(frame, maxFrameLen))

	// Samples produced by a frame, plus some slack for rounding.
	size := int(uint64(frame)*uint64(dstRate)/uint64(srcRate)) + 64
	r := &Resampler{
		buf:     blip.NewBuffer(size),
		out:     make([]int16, size),
		frame:   frame,
		srcRate: srcRate,
		dstRate: dstRate,
	}
	r.buf.SetRates(float64(srcRate), float64(dstRate))
	return r
}

func (r *Resampler) SourceRate() uint32 { return r.srcRate }
func (r *Resampler) HostRate() uint32   { return r.dstRate }

// Resample appends to dst the host samples corresponding to src.
func (r *Resampler) Resample(dst []int16, src []uint8) []int16 {
	for len(src) > 0 {
		n := min(len(src), r.frame)
		for i, s := range src[:n] {
			cur := (int32(s) - 128) * gain
			if cur != r.prev {
				r.buf.AddDelta(uint64(i), cur-r.prev)
				r.prev = cur
			}
		}
		r.buf.EndFrame(n)

		count := r.buf.ReadSamples(r.out, r.buf.SamplesAvailable(), blip.Mono)
		dst = append(dst, r.out[:count]...)
		src = src[n:]
	}
	return dst
}

// Reset drops buffered samples.
func (r *Resampler) Reset() {
	r.buf.Clear()
	r.prev = 0
}

// int16Bytes reinterprets samples as their native (little endian on all
// supported platforms) byte representation.
func int16Bytes(samples []int16) []byte {
	if len(samples) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), len(samples)*2)
}

// converter turns synthesizer chunks into host samples, optionally
// duplicating the mono signal on both stereo channels.
type converter struct {
	rs     *Resampler
	stereo bool

	mono []int16
	out  []int16
}

func newConverter(srcRate, dstRate uint32, stereo bool) converter {
	return converter{
		rs:     NewResampler(srcRate, dstRate),
		stereo: stereo,
	}
}

func (c *converter) convert(samples []uint8) []int16 {
	c.mono = c.rs.Resample(c.mono[:0], samples)
	if !c.stereo {
		return c.mono
	}

	c.out = c.out[:0]
	for _, s := range c.mono {
		c.out = append(c.out, s, s)
	}
	return c.out
}

func (c *converter) channels() int {
	if c.stereo {
		return 2
	}
	return 1
}
