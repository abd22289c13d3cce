// Package mock is a simulated card. It keeps memory like the real one,
// records every driver call, and can be told to fail or to hold a transfer.
package mock

import (
	"context"

	"github.com/decred/slog"
	"github.com/pkg/errors"

	"github.com/gordonklaus/awg"
	"github.com/gordonklaus/awg/session/memory"
)

const (
	OpConfigure = "configure"
	OpDefine    = "define"
	OpAnnounce  = "announce"
	OpExecute   = "execute"
	OpStart     = "start"
	OpStop      = "stop"
	OpClose     = "close"
)

type Session struct {
	*memory.Memory

	// Fail makes the named operation return the error instead of running.
	Fail map[string]error
	// Gate, when set, holds Execute until a value arrives or the context ends.
	Gate chan struct{}
	// OnExecute runs as soon as a transfer starts executing.
	OnExecute func()

	calls   []string
	running bool
	closed  bool
}

func New(bytesPerSample int, log slog.Logger) *Session {
	return &Session{
		Memory: memory.New(bytesPerSample, log),
		Fail:   map[string]error{},
	}
}

// FailWith makes op fail with the given driver code.
func (s *Session) FailWith(op string, code int) {
	s.Fail[op] = &awg.DeviceError{Op: op, Code: code, Err: errors.New("mock driver error")}
}

func (s *Session) call(op string) error {
	s.calls = append(s.calls, op)
	if s.closed && op != OpClose {
		return &awg.DeviceError{Op: op, Err: errors.New("session closed")}
	}
	return s.Fail[op]
}

func (s *Session) Calls() []string { return append([]string(nil), s.calls...) }

func (s *Session) Count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c == op {
			n++
		}
	}
	return n
}

func (s *Session) Running() bool { return s.running }

func (s *Session) Closed() bool { return s.closed }

func (s *Session) Configure(channels int, sampleRate float64, memorySamples int) (awg.Facts, error) {
	if err := s.call(OpConfigure); err != nil {
		return awg.Facts{}, err
	}
	return s.Memory.Configure(channels, sampleRate, memorySamples)
}

func (s *Session) DefineTransfer(data []byte, length uint64) error {
	if err := s.call(OpDefine); err != nil {
		return err
	}
	return s.Memory.DefineTransfer(data, length)
}

func (s *Session) AnnounceAvailable(length uint64) error {
	if err := s.call(OpAnnounce); err != nil {
		return err
	}
	return s.Memory.AnnounceAvailable(length)
}

func (s *Session) Execute(ctx context.Context) error {
	if err := s.call(OpExecute); err != nil {
		return err
	}
	if s.OnExecute != nil {
		s.OnExecute()
	}
	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.Memory.Execute(ctx)
}

func (s *Session) Start() error {
	if err := s.call(OpStart); err != nil {
		return err
	}
	if len(s.Data()) == 0 {
		return &awg.DeviceError{Op: OpStart, Err: errors.New("card memory is empty")}
	}
	s.running = true
	return nil
}

func (s *Session) Stop() error {
	if err := s.call(OpStop); err != nil {
		return err
	}
	s.running = false
	s.Memory.Abort()
	return nil
}

func (s *Session) Close() error {
	if err := s.call(OpClose); err != nil {
		return err
	}
	s.running = false
	s.closed = true
	return nil
}
