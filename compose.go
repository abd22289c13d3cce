package awg

import (
	"fmt"

	"github.com/decred/slog"
	"golang.org/x/sync/errgroup"
)

// A Channel is one output slot: a waveform, or silence when Waveform is nil.
type Channel struct {
	Waveform Waveform
}

func Silent() Channel { return Channel{} }

func (c Channel) Silent() bool { return c.Waveform == nil }

// An Assignment pairs channel slots, in order, with what they play.
type Assignment []Channel

// Assign builds an Assignment for a card with the given channel count. Slots
// past the supplied waveforms are silent, as are nil waveforms.
func Assign(channels int, ws ...Waveform) (Assignment, error) {
	ch, err := NormalizeChannels(channels)
	if err != nil {
		return nil, err
	}
	if len(ws) > ch {
		return nil, &ConfigError{Field: "channel assignment", Reason: fmt.Sprintf("%d waveforms for %d channels", len(ws), ch)}
	}
	a := make(Assignment, ch)
	for i, w := range ws {
		a[i] = Channel{w}
	}
	return a, nil
}

// A SampleBuffer holds one full fill of device memory, interleaved so that
// sample k of channel c is Samples[k*Channels+c].
type SampleBuffer struct {
	Channels int
	Depth    int
	Samples  []int32
}

func (b SampleBuffer) Valid() bool {
	return b.Channels > 0 && b.Depth > 0 && len(b.Samples) == b.Channels*b.Depth
}

// Channel returns a copy of one channel's samples, or nil if c is not a
// channel of b.
func (b SampleBuffer) Channel(c int) []int32 {
	if c < 0 || c >= b.Channels || !b.Valid() {
		return nil
	}
	s := make([]int32, b.Depth)
	for k := range s {
		s[k] = b.Samples[k*b.Channels+c]
	}
	return s
}

// Compose evaluates every assigned waveform over indices 0..MemoryDepth-1,
// quantizes it for the card, and interleaves the channels into one buffer.
// Channels are evaluated in parallel; each writes only its own slots.
func Compose(a Assignment, f Facts, log slog.Logger) (SampleBuffer, error) {
	if log == nil {
		log = slog.Disabled
	}
	if ch, err := NormalizeChannels(f.Channels); err != nil {
		return SampleBuffer{}, err
	} else if ch != f.Channels {
		return SampleBuffer{}, &ConfigError{Field: "channel count", Reason: fmt.Sprintf("%d channels must be configured as %d", f.Channels, ch)}
	}
	if len(a) > f.Channels {
		return SampleBuffer{}, &ConfigError{Field: "channel assignment", Reason: fmt.Sprintf("%d slots for %d channels", len(a), f.Channels)}
	}
	if f.MemoryDepth <= 0 {
		return SampleBuffer{}, &ConfigError{Field: "memory depth", Reason: fmt.Sprintf("%d samples per channel", f.MemoryDepth)}
	}
	q, err := NewQuantizer(f.BytesPerSample)
	if err != nil {
		return SampleBuffer{}, err
	}
	if err := Init(a, Params{SampleRate: f.SampleRate}); err != nil {
		return SampleBuffer{}, err
	}

	idx := make([]int, f.MemoryDepth)
	for i := range idx {
		idx[i] = i
	}
	buf := SampleBuffer{
		Channels: f.Channels,
		Depth:    f.MemoryDepth,
		Samples:  make([]int32, f.MemoryDepth*f.Channels),
	}

	var g errgroup.Group
	for c, ch := range a {
		if ch.Silent() {
			continue
		}
		g.Go(func() error {
			y := ch.Waveform.Wave(idx)
			if len(y) != len(idx) {
				return &ConfigError{Field: "waveform", Reason: fmt.Sprintf("channel %d returned %d samples for %d indices", c, len(y), len(idx))}
			}
			clipped := 0
			for k, v := range y {
				if !q.InRange(v) {
					clipped++
				}
				buf.Samples[k*buf.Channels+c] = q.Quantize(v)
			}
			if clipped > 0 {
				log.Warnf("Channel %d: %d of %d samples clamped to [%d, %d]", c, clipped, len(y), q.Min, q.Max)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SampleBuffer{}, err
	}
	log.Debugf("Composed %d samples over %d channels", len(buf.Samples), buf.Channels)
	return buf, nil
}
