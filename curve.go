package awg

import "math"

// Silhouette draws a bat-wing outline on a sin(300x) carrier, with
// x = (index-100000)/1000. Output is exactly 0 at |x| = 1, |x| = 3 and for
// |x| >= 7.
type Silhouette struct{}

func (Silhouette) Wave(idx []int) []float64 {
	return each(idx, silhouette)
}

func silhouette(i float64) float64 {
	x := (i - 100000) / 1000
	a := math.Abs(x)
	c := math.Sin(300 * x)
	switch {
	case a < 0.5:
		return 2.25 * 400 * c
	case a < 0.75:
		return 400 * (3*a + 0.75) * c
	case a < 1:
		return 400 * (9 - 8*a) * c
	case a > 3 && a < 7:
		return 400 * 3 * math.Sqrt(1-(x/7)*(x/7)) * c
	case a > 1 && a < 3:
		return 400 * (1.5 - 0.5*a - 6*math.Sqrt(10)/14*(math.Sqrt(3-x*x+2*a)-2)) * c
	}
	return 0
}

// Arc is a half circle of the given radius modulating sin(x/3), silent
// outside the radius.
type Arc struct {
	Center, Radius float64
}

func NewArc() *Arc { return &Arc{Center: 10000, Radius: 10000} }

func (a *Arc) Wave(idx []int) []float64 {
	return each(idx, func(x float64) float64 {
		x -= a.Center
		if math.Abs(x) >= a.Radius {
			return 0
		}
		return math.Sqrt(a.Radius*a.Radius-x*x) / 10 * math.Sin(x/3)
	})
}

// ExpSine is 1000·sin(e^(10·index)). The argument overflows past index 70;
// those samples are NaN and quantize to silence.
type ExpSine struct{}

func (ExpSine) Wave(idx []int) []float64 {
	return each(idx, func(x float64) float64 {
		return 1000 * math.Sin(math.Exp(10*x))
	})
}

// LogSine is 1000·sin(ln((10·index)²)), and 0 at index 0.
type LogSine struct{}

func (LogSine) Wave(idx []int) []float64 {
	return each(idx, func(x float64) float64 {
		x *= 10
		if x == 0 {
			return 0
		}
		return 1000 * math.Sin(math.Log(x*x))
	})
}

// Singular is 1000·floor(d·sin(1/d)) with d = index-Pole, and 0 at the pole.
type Singular struct {
	Pole float64
}

func NewSingular() *Singular { return &Singular{Pole: 1000} }

func (s *Singular) Wave(idx []int) []float64 {
	return each(idx, func(x float64) float64 {
		d := x - s.Pole
		if d == 0 {
			return 0
		}
		return 1000 * math.Floor(d*math.Sin(1/d))
	})
}
