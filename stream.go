package awg

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/decred/slog"
	"github.com/pkg/errors"
)

// A Transfer is a SampleBuffer encoded the way device memory holds it:
// little-endian two's complement, BytesPerSample bytes per sample.
type Transfer struct {
	Data   []byte
	Length uint64
}

// Encode packs buf for a card with the given facts. The buffer must fill the
// card's memory exactly.
func Encode(buf SampleBuffer, f Facts) (Transfer, error) {
	if ch, err := NormalizeChannels(f.Channels); err != nil || ch != f.Channels {
		return Transfer{}, &ConfigError{Field: "channel count", Reason: fmt.Sprintf("%d not in 1, 2, 4", f.Channels)}
	}
	if !buf.Valid() || buf.Channels != f.Channels {
		return Transfer{}, &SizeMismatchError{Want: f.TotalBytes(), Got: uint64(len(buf.Samples)) * uint64(f.BytesPerSample)}
	}
	n := uint64(len(buf.Samples)) * uint64(f.BytesPerSample)
	if n != f.TotalBytes() {
		return Transfer{}, &SizeMismatchError{Want: f.TotalBytes(), Got: n}
	}

	data := make([]byte, n)
	switch f.BytesPerSample {
	case 1:
		for i, s := range buf.Samples {
			data[i] = byte(int8(s))
		}
	case 2:
		for i, s := range buf.Samples {
			binary.LittleEndian.PutUint16(data[2*i:], uint16(int16(s)))
		}
	case 4:
		for i, s := range buf.Samples {
			binary.LittleEndian.PutUint32(data[4*i:], uint32(s))
		}
	default:
		_, err := NewQuantizer(f.BytesPerSample)
		return Transfer{}, err
	}
	return Transfer{Data: data, Length: n}, nil
}

// Stream commits buf to device memory in one blocking transfer: define,
// announce, execute. If ctx ends before the card reports completion the
// session is stopped and the error wraps ErrInterrupted.
func Stream(ctx context.Context, buf SampleBuffer, f Facts, sess DeviceSession, log slog.Logger) error {
	if log == nil {
		log = slog.Disabled
	}
	t, err := Encode(buf, f)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Wrap(ErrInterrupted, "transfer")
	}

	if err := sess.DefineTransfer(t.Data, t.Length); err != nil {
		return deviceErr("define transfer", err)
	}
	if err := sess.AnnounceAvailable(t.Length); err != nil {
		return deviceErr("announce available", err)
	}
	log.Infof("Starting DMA transfer of %d bytes", t.Length)
	err = sess.Execute(ctx)
	if ctx.Err() != nil {
		log.Warnf("Transfer interrupted, stopping card")
		if serr := sess.Stop(); serr != nil {
			log.Errorf("Stop after interrupted transfer: %v", serr)
		}
		return errors.Wrap(ErrInterrupted, "transfer")
	}
	if err != nil {
		return deviceErr("execute transfer", err)
	}
	log.Infof("Data has been transferred to board memory")
	return nil
}
