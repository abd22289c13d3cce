// Package paplay previews card output on the default sound device through
// PortAudio, looping the committed memory as the card would.
package paplay

import (
	"github.com/decred/slog"
	"github.com/gordonklaus/portaudio"
	"github.com/pkg/errors"

	"github.com/gordonklaus/awg"
	"github.com/gordonklaus/awg/session/memory"
)

const framesPerBuffer = 1024

type Session struct {
	*memory.Memory
	stream *portaudio.Stream
}

func New(bytesPerSample int, log slog.Logger) (*Session, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, &awg.DeviceError{Op: "open", Err: err}
	}
	return &Session{Memory: memory.New(bytesPerSample, log)}, nil
}

func (s *Session) Start() error {
	if s.stream != nil {
		return &awg.DeviceError{Op: "start", Err: errors.New("already started")}
	}
	f, ok := s.Facts()
	if !ok {
		return &awg.DeviceError{Op: "start", Err: errors.New("card not configured")}
	}
	loop, err := s.Loop()
	if err != nil {
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, f.Channels, f.SampleRate, framesPerBuffer, func(out []int16) {
		loop.Int16(out)
	})
	if err != nil {
		return &awg.DeviceError{Op: "start", Err: err}
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return &awg.DeviceError{Op: "start", Err: err}
	}
	s.stream = stream
	s.Log.Infof("Playing %d channels at %g Hz on the default output", f.Channels, f.SampleRate)
	return nil
}

func (s *Session) Stop() error {
	s.Abort()
	if s.stream == nil {
		return nil
	}
	stream := s.stream
	s.stream = nil
	if err := stream.Stop(); err != nil {
		stream.Close()
		return &awg.DeviceError{Op: "stop", Err: err}
	}
	if err := stream.Close(); err != nil {
		return &awg.DeviceError{Op: "stop", Err: err}
	}
	return nil
}

func (s *Session) Close() error {
	serr := s.Stop()
	if err := portaudio.Terminate(); err != nil {
		return &awg.DeviceError{Op: "close", Err: err}
	}
	return serr
}
