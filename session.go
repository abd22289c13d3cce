package awg

import (
	"context"
	"fmt"
)

// DeviceSession is an opened card. Configuration beyond channel count, rate
// and memory size happens before the session reaches this package.
type DeviceSession interface {
	Configure(channels int, sampleRate float64, memorySamples int) (Facts, error)
	DefineTransfer(data []byte, length uint64) error
	AnnounceAvailable(length uint64) error
	// Execute runs the defined transfer and blocks until the card has it.
	Execute(ctx context.Context) error
	Start() error
	Stop() error
	Close() error
}

// Facts are what a configured session reports about itself.
type Facts struct {
	Channels       int
	BytesPerSample int
	SampleRate     float64
	MemoryDepth    int // samples per channel
}

func (f Facts) TotalBytes() uint64 {
	return uint64(f.MemoryDepth) * uint64(f.Channels) * uint64(f.BytesPerSample)
}

func (f Facts) String() string {
	return fmt.Sprintf("%dch x %d samples x %dB @ %g S/s", f.Channels, f.MemoryDepth, f.BytesPerSample, f.SampleRate)
}

// NormalizeChannels maps a requested channel count onto one the card can
// enable. Three channels are run as four.
func NormalizeChannels(n int) (int, error) {
	switch n {
	case 1, 2, 4:
		return n, nil
	case 3:
		return 4, nil
	}
	return 0, &ConfigError{Field: "channel count", Reason: fmt.Sprintf("%d not in 1, 2, 3, 4", n)}
}

// NewFacts validates a configuration request and derives the per-channel
// memory depth from the total sample memory.
func NewFacts(channels int, sampleRate float64, memorySamples, bytesPerSample int) (Facts, error) {
	ch, err := NormalizeChannels(channels)
	if err != nil {
		return Facts{}, err
	}
	if !(sampleRate > 0) {
		return Facts{}, &ConfigError{Field: "sample rate", Reason: fmt.Sprintf("%g is not positive", sampleRate)}
	}
	if memorySamples <= 0 {
		return Facts{}, &ConfigError{Field: "memory size", Reason: fmt.Sprintf("%d samples", memorySamples)}
	}
	if memorySamples%ch != 0 {
		return Facts{}, &ConfigError{Field: "memory size", Reason: fmt.Sprintf("%d samples not divisible by %d channels", memorySamples, ch)}
	}
	if _, err := NewQuantizer(bytesPerSample); err != nil {
		return Facts{}, err
	}
	return Facts{
		Channels:       ch,
		BytesPerSample: bytesPerSample,
		SampleRate:     sampleRate,
		MemoryDepth:    memorySamples / ch,
	}, nil
}
