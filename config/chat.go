package config

import (
	"time"

	"github.com/habiliai/assistantchat/errors"
)

// ChatConfig tunes the run polling loop. The defaults match the expected
// completion time of a hosted run (seconds, not minutes), so a fixed
// interval suffices and the timeout bounds the worst case.
type ChatConfig struct {
	// RunTimeout is the wall-clock deadline for one run to reach a
	// terminal status. The remote run is not cancelled on expiry.
	RunTimeout time.Duration

	// PollInterval is the sleep between run status polls.
	PollInterval time.Duration
}

func NewChatConfig() (*ChatConfig, error) {
	conf := &ChatConfig{
		RunTimeout:   30 * time.Second,
		PollInterval: 500 * time.Millisecond,
	}

	raw := &struct {
		RunTimeout   string `env:"RUN_TIMEOUT"`
		PollInterval string `env:"POLL_INTERVAL"`
	}{}
	if err := resolveConfig(raw); err != nil {
		return nil, err
	}

	if raw.RunTimeout != "" {
		d, err := time.ParseDuration(raw.RunTimeout)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse RUN_TIMEOUT")
		}
		conf.RunTimeout = d
	}
	if raw.PollInterval != "" {
		d, err := time.ParseDuration(raw.PollInterval)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse POLL_INTERVAL")
		}
		conf.PollInterval = d
	}

	return conf, nil
}
