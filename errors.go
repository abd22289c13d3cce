package awg

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrInterrupted is returned, wrapped with the operation name, when a
// transfer or run is cancelled from outside.
var ErrInterrupted = errors.New("operation interrupted")

// A ConfigError reports an invalid channel, memory or waveform setup.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("awg: invalid %s: %s", e.Field, e.Reason)
}

// A DeviceError reports a failed driver call. Code is the driver's own
// error code, or 0 when the driver gave none.
type DeviceError struct {
	Op   string
	Code int
	Err  error
}

func (e *DeviceError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("awg: device %s failed (code %d): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("awg: device %s failed: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// A SizeMismatchError reports a buffer whose byte length disagrees with the
// device memory it is meant to fill.
type SizeMismatchError struct {
	Want, Got uint64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("awg: buffer is %d bytes, device expects %d", e.Got, e.Want)
}

// A StateError reports a playback command issued in the wrong state. Run
// identifies the controller that refused it.
type StateError struct {
	Op    string
	State State
	Run   uuid.UUID
}

func (e *StateError) Error() string {
	return fmt.Sprintf("awg: run %s: cannot %s while %s", e.Run, e.Op, e.State)
}

func deviceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *DeviceError
	if errors.As(err, &de) {
		return err
	}
	return &DeviceError{Op: op, Err: err}
}
