package awg

import "math"

// GaussSine is a carrier under a Gaussian envelope centred on X0.
type GaussSine struct {
	X0, Sigma float64
	Amp       float64
	Carrier   Sine
}

func NewGaussSine() *GaussSine {
	return &GaussSine{X0: 10000, Sigma: 100000, Amp: 1000, Carrier: Sine{Amp: 1, Freq: 2e6}}
}

func (e *GaussSine) Wave(idx []int) []float64 {
	y := e.Carrier.Wave(idx)
	for i, n := range idx {
		d := float64(n) - e.X0
		y[i] *= e.Amp * math.Exp(-d*d/e.Sigma)
	}
	return y
}

// SechSine is a carrier under a sech² envelope. The carrier phase is taken
// against a fixed reference clock, not the card's sample rate.
type SechSine struct {
	T, X0     float64
	Freq, Ref float64
	Amp       float64
}

func NewSechSine() *SechSine {
	return &SechSine{T: 1000, X0: 100000, Freq: 2e6, Ref: 200e6, Amp: 1000}
}

func (e *SechSine) Wave(idx []int) []float64 {
	d := phaseStep(e.Freq, e.Ref)
	return each(idx, func(x float64) float64 {
		c := math.Cosh((x - e.X0) / e.T)
		return e.Amp / (c * c) * math.Sin(x*d)
	})
}

// Gauss is a bare Gaussian bump.
type Gauss struct {
	X0, Sigma float64
	Amp       float64
}

func NewGauss() *Gauss {
	return &Gauss{X0: 1000, Sigma: 1000, Amp: 1000}
}

func (e *Gauss) Wave(idx []int) []float64 {
	return each(idx, func(x float64) float64 {
		d := x - e.X0
		return e.Amp * math.Exp(-d*d/e.Sigma)
	})
}
