package awg

import "math"

// A Waveform maps sample indices to amplitudes. The result has one value per
// index, in order, and depends on nothing but the indices and the
// waveform's own parameters.
type Waveform interface {
	Wave(idx []int) []float64
}

// WaveFunc is a Waveform evaluated one index at a time.
type WaveFunc func(x float64) float64

func (f WaveFunc) Wave(idx []int) []float64 { return each(idx, f) }

func each(idx []int, f func(x float64) float64) []float64 {
	y := make([]float64, len(idx))
	for i, n := range idx {
		y[i] = f(float64(n))
	}
	return y
}

func phaseStep(freq, sampleRate float64) float64 {
	return 2 * math.Pi * freq / sampleRate
}

type Sine struct {
	Params Params
	Amp    float64
	Freq   float64
}

const (
	DefaultSineAmp  = 6000
	DefaultSineFreq = 177e6
)

func NewSine(freq float64) *Sine {
	return &Sine{Amp: DefaultSineAmp, Freq: freq}
}

func (o *Sine) Wave(idx []int) []float64 {
	d := phaseStep(o.Freq, o.Params.SampleRate)
	return each(idx, func(x float64) float64 {
		return o.Amp * math.Sin(d*x)
	})
}

// Switched alternates between two sine tones. Indices are folded into one
// (Time1+Time2) period; output uses Freq1 up to the first folded index past
// the Time1 threshold and Freq2 from there on.
type Switched struct {
	Params       Params
	Freq1, Freq2 float64
	Time1, Time2 float64
	Amp1, Amp2   float64
}

func NewSwitched(freq1, freq2, time1, time2 float64) *Switched {
	return &Switched{
		Freq1: freq1, Freq2: freq2,
		Time1: time1, Time2: time2,
		Amp1: 2000, Amp2: 1000,
	}
}

func (o *Switched) Wave(idx []int) []float64 {
	period := (o.Time1 + o.Time2) * o.Params.SampleRate * 10e-9
	x := make([]float64, len(idx))
	for i, n := range idx {
		x[i] = float64(n)
		if period > 0 {
			x[i] = math.Mod(x[i], period)
		}
	}
	threshold := o.Time1 * 2.4
	cross := len(x)
	for i, v := range x {
		if v > threshold {
			cross = i
			break
		}
	}

	d1 := phaseStep(o.Freq1, o.Params.SampleRate)
	d2 := phaseStep(o.Freq2, o.Params.SampleRate)
	y := make([]float64, len(x))
	for i, v := range x {
		if i < cross {
			y[i] = o.Amp1 * math.Sin(d1*v)
		} else {
			y[i] = o.Amp2 * math.Sin(d2*v)
		}
	}
	return y
}

// Ramp climbs one step every 10000 samples, starting below zero. It is
// unbounded and only meant for short windows.
type Ramp struct{}

func (Ramp) Wave(idx []int) []float64 {
	return each(idx, func(x float64) float64 { return (x - 1000) / 10000 })
}

// Identity outputs the sample index itself.
type Identity struct{}

func (Identity) Wave(idx []int) []float64 {
	return each(idx, func(x float64) float64 { return x })
}
