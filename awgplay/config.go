package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	"github.com/gordonklaus/awg"
	"github.com/gordonklaus/awg/session"
)

type Config struct {
	Session       session.Config `json:"session"`
	Channels      int            `json:"channels"`
	SampleRateMHz float64        `json:"sample_rate_mhz"`
	MemorySamples int            `json:"memory_samples"`
	LogLevel      string         `json:"log_level"`
	Analyze       bool           `json:"analyze"`
	Waveforms     []WaveConfig   `json:"waveforms"`
}

// A WaveConfig names a library waveform. An empty name or "silent" leaves
// the slot silent.
type WaveConfig struct {
	Name   string             `json:"name"`
	Params map[string]float64 `json:"params,omitempty"`
}

func defaultConfig() *Config {
	return &Config{
		Session:       session.Config{Type: "mock"},
		Channels:      3,
		SampleRateMHz: 625,
		MemorySamples: 16 << 20,
		LogLevel:      "info",
		Waveforms: []WaveConfig{
			{Name: "sine"},
			{Name: "sine"},
			{Name: "sine", Params: map[string]float64{"freq": 1000}},
		},
	}
}

func loadConfig(path string, c *Config) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return errors.Wrapf(err, "expanding %s", path)
	}
	path = expanded
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, c); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}

func (c *Config) SampleRate() float64 { return c.SampleRateMHz * 1e6 }

func (c *Config) Assignment() (awg.Assignment, error) {
	ws := make([]awg.Waveform, len(c.Waveforms))
	for i, wc := range c.Waveforms {
		if wc.Name == "" || wc.Name == "silent" {
			continue
		}
		w, err := awg.NewWaveform(wc.Name, wc.Params)
		if err != nil {
			return nil, err
		}
		ws[i] = w
	}
	return awg.Assign(c.Channels, ws...)
}

// parseWave reads name[:key=value,...].
func parseWave(s string) (WaveConfig, error) {
	name, args, _ := strings.Cut(s, ":")
	wc := WaveConfig{Name: strings.TrimSpace(name)}
	if args == "" {
		return wc, nil
	}
	wc.Params = map[string]float64{}
	for _, kv := range strings.Split(args, ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return wc, errors.Errorf("bad waveform parameter %q", kv)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return wc, errors.Wrapf(err, "waveform parameter %s", k)
		}
		wc.Params[strings.TrimSpace(k)] = x
	}
	return wc, nil
}

type waveFlags []WaveConfig

func (w *waveFlags) String() string { return fmt.Sprint(*w) }

func (w *waveFlags) Set(s string) error {
	wc, err := parseWave(s)
	if err != nil {
		return err
	}
	*w = append(*w, wc)
	return nil
}

// parseArgs builds the configuration from defaults, then the -config file,
// then any flags given explicitly.
func parseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("awgplay", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON configuration `file`")
	sessionType := fs.String("session", "", "session backend: "+strings.Join(session.Types, ", "))
	out := fs.String("out", "", "output `file` for the wav session")
	channels := fs.Int("channels", 0, "channel count (1, 2, 3 or 4)")
	rate := fs.Float64("rate", 0, "sample rate in MS/s")
	mem := fs.Int("memory", 0, "card memory in samples, all channels")
	level := fs.String("loglevel", "", "log level (trace, debug, info, warn, error)")
	analyze := fs.Bool("analyze", false, "log each channel's peak frequency before arming")
	var waves waveFlags
	fs.Var(&waves, "wave", "channel waveform `name[:key=value,...]`, once per channel in order ("+strings.Join(awg.Waveforms(), ", ")+")")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c := defaultConfig()
	if *configPath != "" {
		if err := loadConfig(*configPath, c); err != nil {
			return nil, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "session":
			c.Session.Type = *sessionType
		case "out":
			c.Session.Path = *out
		case "channels":
			c.Channels = *channels
		case "rate":
			c.SampleRateMHz = *rate
		case "memory":
			c.MemorySamples = *mem
		case "loglevel":
			c.LogLevel = *level
		case "analyze":
			c.Analyze = *analyze
		case "wave":
			c.Waveforms = waves
		}
	})
	return c, nil
}
