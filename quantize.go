package awg

import (
	"fmt"
	"math"
)

// A Quantizer turns amplitudes into the signed integers held in device
// memory. Values are floored, then clamped to [Min, Max]; NaN becomes 0.
type Quantizer struct {
	Min, Max int32
}

func NewQuantizer(bytesPerSample int) (Quantizer, error) {
	switch bytesPerSample {
	case 1:
		return Quantizer{math.MinInt8, math.MaxInt8}, nil
	case 2:
		return Quantizer{math.MinInt16, math.MaxInt16}, nil
	case 4:
		return Quantizer{math.MinInt32, math.MaxInt32}, nil
	}
	return Quantizer{}, &ConfigError{Field: "sample width", Reason: fmt.Sprintf("%d bytes per sample", bytesPerSample)}
}

func (q Quantizer) Quantize(x float64) int32 {
	if math.IsNaN(x) {
		return 0
	}
	x = math.Floor(x)
	if x < float64(q.Min) {
		return q.Min
	}
	if x > float64(q.Max) {
		return q.Max
	}
	return int32(x)
}

// InRange reports whether x quantizes without clamping.
func (q Quantizer) InRange(x float64) bool {
	if math.IsNaN(x) {
		return false
	}
	x = math.Floor(x)
	return x >= float64(q.Min) && x <= float64(q.Max)
}
