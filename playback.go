package awg

import (
	"context"
	"fmt"

	"github.com/decred/slog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type State int

const (
	Idle State = iota
	Armed
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// A Controller owns a session for one setup-and-play cycle at a time.
// Idle -> Armed happens only through a completed transfer, Armed -> Running
// through Start, and Running -> Stopped through Stop or an interrupted Run.
// After Stopped the card must be armed again before it can start.
type Controller struct {
	sess   DeviceSession
	facts  Facts
	log    slog.Logger
	id     uuid.UUID
	state  State
	closed bool
}

func NewController(sess DeviceSession, facts Facts, log slog.Logger) *Controller {
	if log == nil {
		log = slog.Disabled
	}
	return &Controller{sess: sess, facts: facts, log: log, id: uuid.New()}
}

func (c *Controller) State() State { return c.state }

// ID identifies this controller's run in logs and errors.
func (c *Controller) ID() uuid.UUID { return c.id }

func (c *Controller) stateErr(op string) error {
	return &StateError{Op: op, State: c.state, Run: c.id}
}

func (c *Controller) Facts() Facts { return c.facts }

// Setup composes a fresh buffer for a and arms the card with it.
func (c *Controller) Setup(ctx context.Context, a Assignment) error {
	buf, err := Compose(a, c.facts, c.log)
	if err != nil {
		return err
	}
	return c.Arm(ctx, buf)
}

// Arm transfers buf to the card. Any previously armed buffer is replaced.
func (c *Controller) Arm(ctx context.Context, buf SampleBuffer) error {
	if c.closed {
		return c.stateErr("arm")
	}
	if c.state == Running {
		return c.stateErr("arm")
	}
	c.state = Idle
	if err := Stream(ctx, buf, c.facts, c.sess, c.log); err != nil {
		c.log.Errorf("Run %s: arm failed: %v", c.id, err)
		return err
	}
	c.state = Armed
	c.log.Debugf("Run %s: armed (%v)", c.id, c.facts)
	return nil
}

// Start begins continuous output of the armed buffer.
func (c *Controller) Start() error {
	if c.state != Armed || c.closed {
		return c.stateErr("start")
	}
	if err := c.sess.Start(); err != nil {
		return deviceErr("start", err)
	}
	c.state = Running
	c.log.Infof("Run %s: card started, looping continuously", c.id)
	return nil
}

// Wait blocks while the card runs, until ctx is done, then stops it. The
// returned error wraps ErrInterrupted unless stopping failed.
func (c *Controller) Wait(ctx context.Context) error {
	if c.state != Running {
		return c.stateErr("wait")
	}
	<-ctx.Done()
	c.log.Infof("Run %s: interrupted", c.id)
	if err := c.Stop(); err != nil {
		return err
	}
	return errors.Wrap(ErrInterrupted, "run")
}

// Run starts the armed card and waits.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Start(); err != nil {
		return err
	}
	return c.Wait(ctx)
}

// Stop halts output and any in-flight transfer. Stopping an idle or stopped
// card does nothing.
func (c *Controller) Stop() error {
	if c.state != Armed && c.state != Running {
		return nil
	}
	c.state = Stopped
	if err := c.sess.Stop(); err != nil {
		c.log.Errorf("Run %s: stop failed: %v", c.id, err)
		return deviceErr("stop", err)
	}
	c.log.Infof("Run %s: card has been stopped", c.id)
	return nil
}

// Close stops the card if needed and releases the session.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	serr := c.Stop()
	c.closed = true
	if err := c.sess.Close(); err != nil {
		return deviceErr("close", err)
	}
	return serr
}
