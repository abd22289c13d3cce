// Command awgplay fills an arbitrary-waveform card with one waveform per
// channel and keeps it looping until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decred/slog"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/gordonklaus/awg"
	"github.com/gordonklaus/awg/session"
)

func main() {
	c, err := parseArgs(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}
	if err := run(c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *Config) error {
	backend := slog.NewBackend(os.Stderr)
	log := backend.Logger("AWGP")
	playLog := backend.Logger("PLAY")
	sessLog := backend.Logger("SESS")
	level, ok := slog.LevelFromString(c.LogLevel)
	if !ok {
		return errors.Errorf("unknown log level %q", c.LogLevel)
	}
	for _, l := range []slog.Logger{log, playLog, sessLog} {
		l.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := c.Assignment()
	if err != nil {
		return err
	}
	sess, err := session.Open(&c.Session, sessLog)
	if err != nil {
		return err
	}
	facts, err := sess.Configure(c.Channels, c.SampleRate(), c.MemorySamples)
	if err != nil {
		if cerr := sess.Close(); cerr != nil {
			log.Errorf("Closing card: %v", cerr)
		}
		return err
	}
	ctl := awg.NewController(sess, facts, playLog)
	defer func() {
		if err := ctl.Close(); err != nil {
			log.Errorf("Closing card: %v", err)
		}
	}()

	t0 := time.Now()
	buf, err := awg.Compose(a, facts, playLog)
	if err != nil {
		return err
	}
	if c.Analyze {
		for ch := 0; ch < buf.Channels; ch++ {
			if ch >= len(a) || a[ch].Silent() {
				log.Infof("Channel %d: silent", ch)
				continue
			}
			f, err := awg.PeakFrequency(buf, ch, facts.SampleRate)
			if err != nil {
				return err
			}
			log.Infof("Channel %d: peak at %.6g Hz", ch, f)
		}
	}
	if err := ctl.Arm(ctx, buf); err != nil {
		if errors.Is(err, awg.ErrInterrupted) {
			log.Infof("Setup interrupted")
			return nil
		}
		return err
	}
	log.Infof("Setup done in %v", time.Since(t0))

	if term.IsTerminal(int(os.Stdin.Fd())) {
		log.Infof("Press Ctrl+C to stop the card")
	}
	if err := ctl.Run(ctx); err != nil && !errors.Is(err, awg.ErrInterrupted) {
		return err
	}
	log.Infof("Process finished")
	return nil
}
