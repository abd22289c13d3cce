package mock

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/gordonklaus/awg"
)

func TestSession_failWith(t *testing.T) {
	s := New(2, nil)
	s.FailWith(OpConfigure, 42)
	_, err := s.Configure(4, 625e6, 1024)
	var de *awg.DeviceError
	if !errors.As(err, &de) || de.Code != 42 || de.Op != OpConfigure {
		t.Fatalf("got %v", err)
	}
	if _, ok := s.Facts(); ok {
		t.Error("failed configure left the card configured")
	}
}

func TestSession_startNeedsMemory(t *testing.T) {
	s := New(2, nil)
	if _, err := s.Configure(1, 1000, 2); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err == nil || s.Running() {
		t.Fatal("started with empty memory")
	}
	data := []byte{1, 0, 2, 0}
	for _, err := range []error{
		s.DefineTransfer(data, 4),
		s.AnnounceAvailable(4),
		s.Execute(context.Background()),
		s.Start(),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	if !s.Running() {
		t.Error("not running after start")
	}
	if err := s.Stop(); err != nil || s.Running() {
		t.Errorf("stop: %v, running %v", err, s.Running())
	}
}

func TestSession_gate(t *testing.T) {
	s := New(2, nil)
	s.Configure(1, 1000, 2)
	s.DefineTransfer([]byte{1, 0, 2, 0}, 4)
	s.AnnounceAvailable(4)
	s.Gate = make(chan struct{}, 1)
	s.Gate <- struct{}{}
	if err := s.Execute(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(s.Data()) != 4 {
		t.Error("gated transfer not committed")
	}
}

func TestSession_closed(t *testing.T) {
	s := New(2, nil)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Configure(1, 1000, 2); err == nil {
		t.Error("configure after close succeeded")
	}
	want := []string{OpClose, OpConfigure}
	got := s.Calls()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("calls %v, want %v", got, want)
	}
}
