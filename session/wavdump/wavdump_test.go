package wavdump

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/gordonklaus/awg"
)

func TestSession_writesWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.wav")
	s, err := New(path, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	f, err := s.Configure(2, 48000, 200)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := awg.Assign(2, awg.Identity{}, awg.WaveFunc(func(x float64) float64 { return -x }))
	buf, err := awg.Compose(a, f, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := awg.Stream(context.Background(), buf, f, s, nil); err != nil {
		t.Fatal(err)
	}

	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	d := wav.NewDecoder(r)
	pcm, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}
	if d.NumChans != 2 || d.SampleRate != 48000 || d.BitDepth != 16 {
		t.Errorf("format: %d channels, %d Hz, %d bits", d.NumChans, d.SampleRate, d.BitDepth)
	}
	if len(pcm.Data) != len(buf.Samples) {
		t.Fatalf("%d samples in file, want %d", len(pcm.Data), len(buf.Samples))
	}
	for i, v := range buf.Samples {
		if pcm.Data[i] != int(v) {
			t.Fatalf("sample %d: file has %d, want %d", i, pcm.Data[i], v)
		}
	}
}

func TestNew_errors(t *testing.T) {
	if _, err := New("", 2, nil); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := New("x.wav", 1, nil); err == nil {
		t.Error("expected error for 8-bit capture")
	}
}
