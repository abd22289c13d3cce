package awg_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/gordonklaus/awg"
	"github.com/gordonklaus/awg/session/mock"
)

func controller(t *testing.T) (*awg.Controller, *mock.Session, awg.Assignment) {
	t.Helper()
	m, f := configured(t, 3, 64)
	a, err := awg.Assign(3, awg.NewSine(awg.DefaultSineFreq), awg.NewSine(awg.DefaultSineFreq), awg.NewSine(1000))
	if err != nil {
		t.Fatal(err)
	}
	return awg.NewController(m, f, nil), m, a
}

func wantState(t *testing.T, c *awg.Controller, want awg.State) {
	t.Helper()
	if got := c.State(); got != want {
		t.Fatalf("state %v, want %v", got, want)
	}
}

func wantStateError(t *testing.T, err error) {
	t.Helper()
	var se *awg.StateError
	if !errors.As(err, &se) {
		t.Fatalf("expected StateError, got %v", err)
	}
}

func TestController_lifecycle(t *testing.T) {
	c, m, a := controller(t)
	ctx := context.Background()
	wantState(t, c, awg.Idle)
	wantStateError(t, c.Start())

	if err := c.Setup(ctx, a); err != nil {
		t.Fatal(err)
	}
	wantState(t, c, awg.Armed)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	wantState(t, c, awg.Running)
	if !m.Running() {
		t.Error("card not running")
	}
	wantStateError(t, c.Setup(ctx, a))

	if err := c.Stop(); err != nil {
		t.Fatal(err)
	}
	wantState(t, c, awg.Stopped)
	if err := c.Stop(); err != nil {
		t.Fatal(err)
	}
	if n := m.Count(mock.OpStop); n != 1 {
		t.Errorf("stop called %d times, want 1", n)
	}
	if m.Running() {
		t.Error("card still running")
	}

	wantStateError(t, c.Start())
	if err := c.Setup(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	wantState(t, c, awg.Running)
}

func TestController_interruptWhileRunning(t *testing.T) {
	c, m, a := controller(t)
	if err := c.Setup(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx); !errors.Is(err, awg.ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}
	wantState(t, c, awg.Stopped)
	if n := m.Count(mock.OpStop); n != 1 {
		t.Errorf("stop called %d times, want 1", n)
	}

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if m.Count(mock.OpStop) != 1 || m.Count(mock.OpClose) != 1 {
		t.Errorf("calls after close: %v", m.Calls())
	}
}

func TestController_waitUntilInterrupted(t *testing.T) {
	c, m, a := controller(t)
	if err := c.Setup(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	go func() { done <- c.Wait(ctx) }()
	cancel()
	if err := <-done; !errors.Is(err, awg.ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}
	if n := m.Count(mock.OpStop); n != 1 {
		t.Errorf("stop called %d times, want 1", n)
	}
}

func TestController_failedArm(t *testing.T) {
	c, m, a := controller(t)
	m.FailWith(mock.OpExecute, 263)
	err := c.Setup(context.Background(), a)
	var de *awg.DeviceError
	if !errors.As(err, &de) || de.Code != 263 {
		t.Fatalf("expected DeviceError code 263, got %v", err)
	}
	wantState(t, c, awg.Idle)
	wantStateError(t, c.Start())
	if m.Count(mock.OpStart) != 0 {
		t.Error("card started after failed transfer")
	}
}

func TestController_interruptedArm(t *testing.T) {
	c, m, a := controller(t)
	ctx, cancel := context.WithCancel(context.Background())
	m.Gate = make(chan struct{})
	m.OnExecute = cancel
	if err := c.Setup(ctx, a); !errors.Is(err, awg.ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}
	wantState(t, c, awg.Idle)
	wantStateError(t, c.Start())
	if m.Count(mock.OpStop) != 1 || m.Count(mock.OpStart) != 0 {
		t.Errorf("calls: %v", m.Calls())
	}
}

func TestController_failedStart(t *testing.T) {
	c, m, a := controller(t)
	if err := c.Setup(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	m.FailWith(mock.OpStart, 1)
	var de *awg.DeviceError
	if err := c.Start(); !errors.As(err, &de) {
		t.Fatalf("expected DeviceError, got %v", err)
	}
	wantState(t, c, awg.Armed)
}

func TestController_close(t *testing.T) {
	c, m, a := controller(t)
	if err := c.Setup(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if m.Count(mock.OpStop) != 1 || m.Count(mock.OpClose) != 1 || !m.Closed() {
		t.Errorf("calls: %v", m.Calls())
	}
	wantStateError(t, c.Setup(context.Background(), a))
}

func TestController_id(t *testing.T) {
	c, _, _ := controller(t)
	d, _, _ := controller(t)
	if c.ID() == d.ID() {
		t.Errorf("controllers share run id %s", c.ID())
	}
	var se *awg.StateError
	if err := c.Start(); !errors.As(err, &se) || se.Run != c.ID() {
		t.Errorf("got %v, want StateError for run %s", err, c.ID())
	}
}
