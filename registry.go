package awg

import (
	"fmt"
	"sort"
	"strings"
)

type waveParams map[string]float64

func (p waveParams) get(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

type waveCtor struct {
	keys []string
	build func(p waveParams) Waveform
}

var waveforms = map[string]waveCtor{
	"sine": {[]string{"amp", "freq"}, func(p waveParams) Waveform {
		return &Sine{Amp: p.get("amp", DefaultSineAmp), Freq: p.get("freq", DefaultSineFreq)}
	}},
	"switched": {[]string{"freq1", "freq2", "time1", "time2", "amp1", "amp2"}, func(p waveParams) Waveform {
		o := NewSwitched(p.get("freq1", 60e6), p.get("freq2", 40e6), p.get("time1", 20000), p.get("time2", 10000))
		o.Amp1 = p.get("amp1", o.Amp1)
		o.Amp2 = p.get("amp2", o.Amp2)
		return o
	}},
	"silhouette": {nil, func(waveParams) Waveform { return Silhouette{} }},
	"expsine":    {nil, func(waveParams) Waveform { return ExpSine{} }},
	"logsine":    {nil, func(waveParams) Waveform { return LogSine{} }},
	"gausssine": {[]string{"x0", "sigma", "amp", "freq"}, func(p waveParams) Waveform {
		e := NewGaussSine()
		e.X0 = p.get("x0", e.X0)
		e.Sigma = p.get("sigma", e.Sigma)
		e.Amp = p.get("amp", e.Amp)
		e.Carrier.Freq = p.get("freq", e.Carrier.Freq)
		return e
	}},
	"sechsine": {[]string{"t", "x0", "freq", "ref", "amp"}, func(p waveParams) Waveform {
		e := NewSechSine()
		e.T = p.get("t", e.T)
		e.X0 = p.get("x0", e.X0)
		e.Freq = p.get("freq", e.Freq)
		e.Ref = p.get("ref", e.Ref)
		e.Amp = p.get("amp", e.Amp)
		return e
	}},
	"gauss": {[]string{"x0", "sigma", "amp"}, func(p waveParams) Waveform {
		e := NewGauss()
		e.X0 = p.get("x0", e.X0)
		e.Sigma = p.get("sigma", e.Sigma)
		e.Amp = p.get("amp", e.Amp)
		return e
	}},
	"ramp": {nil, func(waveParams) Waveform { return Ramp{} }},
	"arc": {[]string{"center", "radius"}, func(p waveParams) Waveform {
		a := NewArc()
		a.Center = p.get("center", a.Center)
		a.Radius = p.get("radius", a.Radius)
		return a
	}},
	"singular": {[]string{"pole"}, func(p waveParams) Waveform {
		return &Singular{Pole: p.get("pole", 1000)}
	}},
	"identity": {nil, func(waveParams) Waveform { return Identity{} }},
}

// NewWaveform builds a library waveform by name. Parameters left out keep
// their defaults.
func NewWaveform(name string, params map[string]float64) (Waveform, error) {
	c, ok := waveforms[strings.ToLower(name)]
	if !ok {
		return nil, &ConfigError{Field: "waveform", Reason: fmt.Sprintf("unknown waveform %q", name)}
	}
	for k := range params {
		if !contains(c.keys, k) {
			return nil, &ConfigError{Field: "waveform", Reason: fmt.Sprintf("%s has no parameter %q", name, k)}
		}
	}
	return c.build(params), nil
}

// Waveforms lists the names NewWaveform accepts.
func Waveforms() []string {
	names := make([]string, 0, len(waveforms))
	for name := range waveforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func contains(s []string, x string) bool {
	for _, y := range s {
		if y == x {
			return true
		}
	}
	return false
}
