package awg

import "testing"

func TestPeakFrequency(t *testing.T) {
	a, _ := Assign(2, &Sine{Amp: 1000, Freq: 64}, &Sine{Amp: 1000, Freq: 200})
	buf, err := Compose(a, Facts{Channels: 2, BytesPerSample: 2, SampleRate: 1024, MemoryDepth: 1500}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for ch, want := range []float64{64, 200} {
		got, err := PeakFrequency(buf, ch, 1024)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("channel %d: peak at %v, want %v", ch, got, want)
		}
	}
}

func TestPeakFrequency_errors(t *testing.T) {
	buf := SampleBuffer{Channels: 1, Depth: 2, Samples: []int32{1, 2}}
	if _, err := PeakFrequency(buf, 0, 1000); err == nil {
		t.Error("expected error for a 2-sample channel")
	}
	if _, err := PeakFrequency(buf, 1, 1000); err == nil {
		t.Error("expected error for a missing channel")
	}
}
