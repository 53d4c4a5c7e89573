package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/recapbot/pkg/log"
)

// OpenAIConfig selects one model per purpose, mirroring the bot's command
// surface: cheap models for commentary, stronger ones for Q&A and proofs.
type OpenAIConfig struct {
	APIKey string `env:"RECAP_OPENAI_API_KEY,required,notEmpty"`

	// BaseURL overrides the API host for OpenAI-compatible gateways.
	BaseURL string `env:"RECAP_OPENAI_BASE_URL"`

	ChatModel    string `env:"RECAP_CHAT_MODEL" envDefault:"gpt-4.1"`
	SummaryModel string `env:"RECAP_SUMMARY_MODEL" envDefault:"gpt-4.1-mini"`
	ProofModel   string `env:"RECAP_PROOF_MODEL" envDefault:"gpt-4.1"`
	CommentModel string `env:"RECAP_COMMENT_MODEL" envDefault:"gpt-4.1-nano"`
	VisionModel  string `env:"RECAP_VISION_MODEL" envDefault:"gpt-4.1"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}
