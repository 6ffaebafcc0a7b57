package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func square(n, period int) []uint8 {
	buf := make([]uint8, n)
	for i := range buf {
		if (i/(period/2))%2 == 0 {
			buf[i] = 255
		}
	}
	return buf
}

func TestResamplerLength(t *testing.T) {
	tests := []struct {
		src, dst uint32
	}{
		{8000, 44100},
		{8000, 48000},
		{1000, 48000},
		{16000, 16000},
		{65535, 44100},
	}
	for _, tt := range tests {
		r := NewResampler(tt.src, tt.dst)
		out := r.Resample(nil, square(int(tt.src), 40))

		want := int(tt.dst)
		if got := len(out); got < want-2 || got > want+2 {
			t.Errorf("%d→%d Hz: 1s of input gave %d samples, want ~%d", tt.src, tt.dst, got, want)
		}
	}
}

func TestResamplerSilence(t *testing.T) {
	r := NewResampler(8000, 44100)
	in := bytes.Repeat([]uint8{128}, 4000)
	for i, s := range r.Resample(nil, in) {
		if s != 0 {
			t.Fatalf("sample %d = %d, want 0 for a centered input", i, s)
		}
	}
}

func TestResamplerSignal(t *testing.T) {
	r := NewResampler(8000, 44100)
	out := r.Resample(nil, square(8000, 16))

	var lo, hi int16
	for _, s := range out {
		lo, hi = min(lo, s), max(hi, s)
	}
	if hi < 10000 || lo > -10000 {
		t.Errorf("square wave resampled to range [%d, %d], want a wider swing", lo, hi)
	}
}

func TestResamplerChunking(t *testing.T) {
	in := square(5000, 30)

	whole := NewResampler(8000, 44100).Resample(nil, in)

	r := NewResampler(8000, 44100)
	var chunked []int16
	for chunk := range slices.Chunk(in, 333) {
		chunked = r.Resample(chunked, chunk)
	}
	if diff := cmp.Diff(whole, chunked); diff != "" {
		t.Errorf("chunked resampling differs (-whole +chunked):\n%s", diff)
	}
}

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestRawWriter(t *testing.T) {
	var w closeRecorder
	rw := NewRawWriter(&w)
	if err := rw.Write([]uint8{0, 127, 255}); err != nil {
		t.Fatal(err)
	}
	if err := rw.Write([]uint8{1}); err != nil {
		t.Fatal(err)
	}
	if err := rw.Close(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0, 127, 255, 1}, w.Bytes()); diff != "" {
		t.Errorf("raw output mismatch (-want +got):\n%s", diff)
	}
	if !w.closed {
		t.Errorf("underlying writer not closed")
	}

	// Non closers are left alone.
	if err := NewRawWriter(&bytes.Buffer{}).Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestConverterStereo(t *testing.T) {
	c := newConverter(8000, 8000, true)
	out := c.convert(square(100, 10))
	if len(out)%2 != 0 {
		t.Fatalf("odd stereo sample count %d", len(out))
	}
	for i := 0; i < len(out); i += 2 {
		if out[i] != out[i+1] {
			t.Fatalf("frame %d: left %d != right %d", i/2, out[i], out[i+1])
		}
	}
}

func TestInt16Bytes(t *testing.T) {
	if int16Bytes(nil) != nil {
		t.Errorf("int16Bytes(nil) != nil")
	}
	b := int16Bytes([]int16{0x0102, -1})
	if len(b) != 4 {
		t.Fatalf("len = %d, want 4", len(b))
	}
}

func TestWAVFile(t *testing.T) {
	const (
		src, dst = 8000, 44100
		chunk    = 512
		nchunks  = 5

		// Size of the RIFF/WAVE header preceding PCM data.
		headerLen = 44
	)
	in := square(chunk*nchunks, 40)
	mono := len(NewResampler(src, dst).Resample(nil, in))

	for _, stereo := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "out.wav")
		wf, err := NewWAVFile(path, src, dst, stereo)
		if err != nil {
			t.Fatal(err)
		}
		for c := range slices.Chunk(in, chunk) {
			if err := wf.Write(c); err != nil {
				t.Fatalf("stereo=%t: Write() = %v", stereo, err)
			}
		}

		want := mono
		if stereo {
			want *= 2
		}
		if got := wf.SampleCount(); got != want {
			t.Errorf("stereo=%t: SampleCount() = %d, want %d", stereo, got, want)
		}
		if err := wf.Close(); err != nil {
			t.Fatalf("stereo=%t: Close() = %v", stereo, err)
		}

		fi, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if size := int64(headerLen + 2*want); fi.Size() != size {
			t.Errorf("stereo=%t: file size = %d, want %d", stereo, fi.Size(), size)
		}
	}
}
