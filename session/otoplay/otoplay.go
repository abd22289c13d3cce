// Package otoplay previews card output through oto. oto allows a single
// context per process, so only one session may be open at a time.
package otoplay

import (
	"time"

	"github.com/decred/slog"
	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/gordonklaus/awg"
	"github.com/gordonklaus/awg/session/memory"
)

type Session struct {
	*memory.Memory
	ctx    *oto.Context
	format awg.Facts
	player *oto.Player
}

func New(bytesPerSample int, log slog.Logger) *Session {
	return &Session{Memory: memory.New(bytesPerSample, log)}
}

func (s *Session) Configure(channels int, sampleRate float64, memorySamples int) (awg.Facts, error) {
	f, err := s.Memory.Configure(channels, sampleRate, memorySamples)
	if err != nil {
		return f, err
	}
	if s.ctx != nil {
		if f.SampleRate != s.format.SampleRate || f.Channels != s.format.Channels {
			return awg.Facts{}, &awg.DeviceError{Op: "configure", Err: errors.New("oto context already open with another format")}
		}
		return f, nil
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(f.SampleRate),
		ChannelCount: f.Channels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return awg.Facts{}, &awg.DeviceError{Op: "configure", Err: err}
	}
	<-ready
	s.ctx, s.format = ctx, f
	return f, nil
}

func (s *Session) Start() error {
	if s.ctx == nil {
		return &awg.DeviceError{Op: "start", Err: errors.New("card not configured")}
	}
	if s.player != nil {
		return &awg.DeviceError{Op: "start", Err: errors.New("already started")}
	}
	loop, err := s.Loop()
	if err != nil {
		return err
	}
	if err := s.ctx.Resume(); err != nil {
		return &awg.DeviceError{Op: "start", Err: err}
	}
	s.player = s.ctx.NewPlayer(loop)
	s.player.Play()
	s.Log.Infof("Playing %d channels through oto at %g Hz", s.format.Channels, s.format.SampleRate)
	return nil
}

func (s *Session) Stop() error {
	s.Abort()
	if s.player == nil {
		return nil
	}
	p := s.player
	s.player = nil
	p.Pause()
	if err := p.Close(); err != nil {
		return &awg.DeviceError{Op: "stop", Err: err}
	}
	return nil
}

func (s *Session) Close() error {
	serr := s.Stop()
	if s.ctx != nil {
		if err := s.ctx.Suspend(); err != nil {
			return &awg.DeviceError{Op: "close", Err: err}
		}
	}
	return serr
}
