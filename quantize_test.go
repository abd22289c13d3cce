package awg

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestQuantize(t *testing.T) {
	q, err := NewQuantizer(2)
	if err != nil {
		t.Fatal(err)
	}
	for x, want := range map[float64]int32{
		1.9:   1,
		-1.9:  -2,
		0:     0,
		-0.5:  -1,
		32767: 32767,
		40000: 32767,
		-1e9:  -32768,
	} {
		if got := q.Quantize(x); got != want {
			t.Errorf("Quantize(%v) = %d, want %d", x, got, want)
		}
	}
	if got := q.Quantize(math.NaN()); got != 0 {
		t.Errorf("Quantize(NaN) = %d, want 0", got)
	}
	if got := q.Quantize(math.Inf(1)); got != math.MaxInt16 {
		t.Errorf("Quantize(+Inf) = %d", got)
	}
	if got := q.Quantize(math.Inf(-1)); got != math.MinInt16 {
		t.Errorf("Quantize(-Inf) = %d", got)
	}
}

func TestQuantizer_InRange(t *testing.T) {
	q, _ := NewQuantizer(1)
	for x, want := range map[float64]bool{
		127.9:  true,
		128:    false,
		-128:   true,
		-128.1: false,
	} {
		if got := q.InRange(x); got != want {
			t.Errorf("InRange(%v) = %v, want %v", x, got, want)
		}
	}
	if q.InRange(math.NaN()) {
		t.Error("NaN reported in range")
	}
}

func TestNewQuantizer_width(t *testing.T) {
	q, err := NewQuantizer(4)
	if err != nil || q.Max != math.MaxInt32 {
		t.Errorf("4 bytes: %+v, %v", q, err)
	}
	_, err = NewQuantizer(3)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("3 bytes: expected ConfigError, got %v", err)
	}
}
