package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/recapbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"RECAP_RUNTIME_PATH" envDefault:".recapbot"`

	// History settings
	HistoryCapacity int `env:"RECAP_HISTORY_CAPACITY" envDefault:"2000"`

	// Image-analysis conversation settings, in user/assistant turn pairs.
	ConversationPairs int `env:"RECAP_CONVERSATION_PAIRS" envDefault:"15"`

	// ConciseReplies appends brevity instructions to every system prompt.
	ConciseReplies bool `env:"RECAP_CONCISE_REPLIES" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	if err := c.Validate(); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("invalid App config")
	}
	return c
}

// Validate fails fast on misconfiguration instead of surfacing it at first use.
func (c AppConfig) Validate() error {
	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("history capacity must be positive, got %d", c.HistoryCapacity)
	}
	if c.ConversationPairs <= 0 {
		return fmt.Errorf("conversation pairs must be positive, got %d", c.ConversationPairs)
	}
	return nil
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}
