// Package wavdump is a capture backend: every committed transfer is also
// written to a WAV file, one WAV channel per card channel.
package wavdump

import (
	"context"
	"os"

	"github.com/decred/slog"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/gordonklaus/awg"
	"github.com/gordonklaus/awg/session/memory"
)

const pcmFormat = 1

type Session struct {
	*memory.Memory
	Path    string
	running bool
}

func New(path string, bytesPerSample int, log slog.Logger) (*Session, error) {
	if path == "" {
		return nil, &awg.ConfigError{Field: "wav path", Reason: "empty"}
	}
	if bytesPerSample != 2 {
		return nil, &awg.ConfigError{Field: "sample width", Reason: "wav capture needs 2 bytes per sample"}
	}
	return &Session{Memory: memory.New(bytesPerSample, log), Path: path}, nil
}

func (s *Session) Execute(ctx context.Context) error {
	if err := s.Memory.Execute(ctx); err != nil {
		return err
	}
	if err := s.write(); err != nil {
		return &awg.DeviceError{Op: "execute transfer", Err: err}
	}
	return nil
}

func (s *Session) write() error {
	f, _ := s.Facts()
	out, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	defer out.Close()

	bits := 8 * f.BytesPerSample
	samples := s.Samples()
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: f.Channels,
			SampleRate:  int(f.SampleRate),
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: bits,
	}
	for i, v := range samples {
		buf.Data[i] = int(v)
	}
	enc := wav.NewEncoder(out, int(f.SampleRate), bits, f.Channels, pcmFormat)
	if err := enc.Write(buf); err != nil {
		return errors.Wrapf(err, "writing %s", s.Path)
	}
	if err := enc.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", s.Path)
	}
	s.Log.Infof("Wrote %d frames to %s", len(samples)/f.Channels, s.Path)
	return nil
}

func (s *Session) Start() error {
	if len(s.Data()) == 0 {
		return &awg.DeviceError{Op: "start", Err: errors.New("card memory is empty")}
	}
	s.running = true
	return nil
}

func (s *Session) Stop() error {
	s.Abort()
	s.running = false
	return nil
}

func (s *Session) Close() error { return s.Stop() }
