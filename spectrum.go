package awg

import (
	"fmt"
	"math/cmplx"

	"github.com/ktye/fft"
	"github.com/mjibson/go-dsp/window"
)

const maxSpectrumSize = 1 << 16

// PeakFrequency returns the frequency of the strongest non-DC component of
// one channel, from a Hann-windowed FFT over the longest power-of-two
// prefix of the channel (at most 65536 samples).
func PeakFrequency(buf SampleBuffer, channel int, sampleRate float64) (float64, error) {
	if channel < 0 || channel >= buf.Channels {
		return 0, &ConfigError{Field: "channel", Reason: fmt.Sprintf("%d of %d", channel, buf.Channels)}
	}
	n := 1
	for n*2 <= buf.Depth && n*2 <= maxSpectrumSize {
		n *= 2
	}
	if n < 4 {
		return 0, &ConfigError{Field: "memory depth", Reason: fmt.Sprintf("%d samples is too short to analyze", buf.Depth)}
	}

	x := make([]float64, n)
	for k := range x {
		x[k] = float64(buf.Samples[k*buf.Channels+channel])
	}
	window.Apply(x, window.Hann)

	f, err := fft.New(n)
	if err != nil {
		return 0, err
	}
	c := make([]complex128, n)
	for k, v := range x {
		c[k] = complex(v, 0)
	}
	c = f.Transform(c)

	peak, mag := 0, 0.0
	for k := 1; k <= n/2; k++ {
		if m := cmplx.Abs(c[k]); m > mag {
			peak, mag = k, m
		}
	}
	return float64(peak) * sampleRate / float64(n), nil
}
