// Package memory emulates the on-card sample memory and the host-to-card
// transfer handshake. Backends embed Memory and add Start, Stop and Close.
package memory

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/decred/slog"
	"github.com/pkg/errors"

	"github.com/gordonklaus/awg"
)

type Memory struct {
	Log            slog.Logger
	BytesPerSample int

	mu        sync.Mutex
	facts     awg.Facts
	ok        bool
	pending   []byte
	defined   uint64
	announced uint64
	data      []byte
}

func New(bytesPerSample int, log slog.Logger) *Memory {
	if log == nil {
		log = slog.Disabled
	}
	return &Memory{Log: log, BytesPerSample: bytesPerSample}
}

func (m *Memory) Configure(channels int, sampleRate float64, memorySamples int) (awg.Facts, error) {
	f, err := awg.NewFacts(channels, sampleRate, memorySamples, m.BytesPerSample)
	if err != nil {
		return awg.Facts{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.facts, m.ok = f, true
	m.pending, m.defined, m.announced, m.data = nil, 0, 0, nil
	m.Log.Infof("Configured %v", f)
	return f, nil
}

func (m *Memory) Facts() (awg.Facts, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.facts, m.ok
}

func (m *Memory) DefineTransfer(data []byte, length uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.ok {
		return &awg.DeviceError{Op: "define transfer", Err: errors.New("card not configured")}
	}
	if uint64(len(data)) != length || length > m.facts.TotalBytes() {
		return &awg.DeviceError{Op: "define transfer", Err: errors.Errorf("length %d for %d byte buffer and %d byte memory", length, len(data), m.facts.TotalBytes())}
	}
	m.pending, m.defined, m.announced = data, length, 0
	return nil
}

func (m *Memory) AnnounceAvailable(length uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return &awg.DeviceError{Op: "announce available", Err: errors.New("no transfer defined")}
	}
	if length != m.defined {
		return &awg.DeviceError{Op: "announce available", Err: errors.Errorf("announced %d of %d defined bytes", length, m.defined)}
	}
	m.announced = length
	return nil
}

// Execute commits the announced bytes to memory.
func (m *Memory) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil || m.announced == 0 {
		return &awg.DeviceError{Op: "execute transfer", Err: errors.New("transfer not announced")}
	}
	m.data = append([]byte(nil), m.pending[:m.announced]...)
	m.pending, m.defined, m.announced = nil, 0, 0
	m.Log.Debugf("Committed %d bytes to card memory", len(m.data))
	return nil
}

// Abort drops a defined but not yet executed transfer.
func (m *Memory) Abort() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending, m.defined, m.announced = nil, 0, 0
}

// Data returns the committed memory contents.
func (m *Memory) Data() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}

// Samples decodes the committed memory back into interleaved samples.
func (m *Memory) Samples() []int32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decode(m.data, m.facts.BytesPerSample)
}

func decode(data []byte, width int) []int32 {
	if width <= 0 {
		return nil
	}
	s := make([]int32, len(data)/width)
	for i := range s {
		switch width {
		case 1:
			s[i] = int32(int8(data[i]))
		case 2:
			s[i] = int32(int16(binary.LittleEndian.Uint16(data[2*i:])))
		case 4:
			s[i] = int32(binary.LittleEndian.Uint32(data[4*i:]))
		}
	}
	return s
}

// A Loop replays committed memory endlessly, one interleaved frame at a time.
type Loop struct {
	samples []int32
	width   int
	pos     int
}

func (m *Memory) Loop() (*Loop, error) {
	s := m.Samples()
	if len(s) == 0 {
		return nil, &awg.DeviceError{Op: "start", Err: errors.New("card memory is empty")}
	}
	m.mu.Lock()
	width := m.facts.BytesPerSample
	m.mu.Unlock()
	return &Loop{samples: s, width: width}, nil
}

// Int16 fills out with the next samples scaled to 16 bits.
func (l *Loop) Int16(out []int16) {
	for i := range out {
		v := l.samples[l.pos]
		switch l.width {
		case 1:
			v <<= 8
		case 4:
			v >>= 16
		}
		out[i] = int16(v)
		l.pos++
		if l.pos == len(l.samples) {
			l.pos = 0
		}
	}
}

// Read implements io.Reader over 16-bit little-endian frames. It never ends.
func (l *Loop) Read(p []byte) (int, error) {
	n := len(p) / 2
	s := make([]int16, n)
	l.Int16(s)
	for i, v := range s {
		binary.LittleEndian.PutUint16(p[2*i:], uint16(v))
	}
	return 2 * n, nil
}

func (l *Loop) String() string {
	return fmt.Sprintf("loop of %d samples at %d", len(l.samples), l.pos)
}
