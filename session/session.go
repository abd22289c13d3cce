// Package session opens a device session by backend name.
package session

import (
	"fmt"

	"github.com/decred/slog"

	"github.com/gordonklaus/awg"
	"github.com/gordonklaus/awg/session/mock"
	"github.com/gordonklaus/awg/session/otoplay"
	"github.com/gordonklaus/awg/session/paplay"
	"github.com/gordonklaus/awg/session/wavdump"
)

type Config struct {
	Type           string `json:"type"`
	Path           string `json:"path,omitempty"`
	BytesPerSample int    `json:"bytes_per_sample,omitempty"`
}

const DefaultBytesPerSample = 2

// Types lists the backends Open knows.
var Types = []string{"mock", "portaudio", "oto", "wav"}

func Open(config *Config, log slog.Logger) (awg.DeviceSession, error) {
	bps := config.BytesPerSample
	if bps == 0 {
		bps = DefaultBytesPerSample
	}
	switch config.Type {
	case "", "mock":
		return mock.New(bps, log), nil
	case "portaudio":
		s, err := paplay.New(bps, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "oto":
		return otoplay.New(bps, log), nil
	case "wav":
		s, err := wavdump.New(config.Path, bps, log)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, &awg.ConfigError{Field: "session type", Reason: fmt.Sprintf("unknown session type %q", config.Type)}
	}
}
