package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/recapbot/pkg/log"
)

// DigestConfig controls the proactive daily summary. The [StartHour,EndHour)
// window is evaluated in Timezone; an equal pair is a valid zero-width window
// that disables automatic digests.
type DigestConfig struct {
	StartHour   int           `env:"RECAP_DIGEST_START_HOUR" envDefault:"20"`
	EndHour     int           `env:"RECAP_DIGEST_END_HOUR" envDefault:"22"`
	Timezone    string        `env:"RECAP_DIGEST_TIMEZONE" envDefault:"Europe/London"`
	WindowHours int           `env:"RECAP_DIGEST_WINDOW_HOURS" envDefault:"24"`
	Interval    time.Duration `env:"RECAP_DIGEST_INTERVAL" envDefault:"1h"`
}

func NewDigestConfig(ctx context.Context) *DigestConfig {
	c := &DigestConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Digest config")
	}
	if err := c.Validate(); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("invalid Digest config")
	}
	return c
}

func (c DigestConfig) Validate() error {
	if c.StartHour < 0 || c.StartHour > 24 {
		return fmt.Errorf("digest start hour out of range: %d", c.StartHour)
	}
	if c.EndHour < 0 || c.EndHour > 24 {
		return fmt.Errorf("digest end hour out of range: %d", c.EndHour)
	}
	if c.StartHour > c.EndHour {
		return fmt.Errorf("digest window inverted: %d > %d", c.StartHour, c.EndHour)
	}
	if c.WindowHours <= 0 {
		return fmt.Errorf("digest window hours must be positive, got %d", c.WindowHours)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("digest interval must be positive, got %s", c.Interval)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid digest timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone. Validate has already checked it.
func (c DigestConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c DigestConfig) Window() time.Duration {
	return time.Duration(c.WindowHours) * time.Hour
}
