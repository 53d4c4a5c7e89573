package llm

import (
	"context"

	"github.com/sandevgo/recapbot/internal/config"
	"github.com/sandevgo/recapbot/internal/core"
	"github.com/sandevgo/recapbot/pkg/log"
)

// Providers holds one configured provider per bot task. Summaries and
// commentary run warmer and shorter than proofs, matching the prompt design.
type Providers struct {
	Chat    core.AIProvider
	Summary core.AIProvider
	Proof   core.AIProvider
	Comment core.AIProvider
	Vision  core.AIProvider
}

func NewProviders(ctx context.Context, cfg *config.OpenAIConfig) *Providers {
	log.FromCtx(ctx).Info().
		Str("chat_model", cfg.ChatModel).
		Str("summary_model", cfg.SummaryModel).
		Str("vision_model", cfg.VisionModel).
		Msg("starting llm providers")

	base := WithBaseURL(cfg.BaseURL)
	return &Providers{
		Chat:    NewOpenAI(cfg.APIKey, cfg.ChatModel, base, WithTemperature(0.7), WithMaxTokens(1000)),
		Summary: NewOpenAI(cfg.APIKey, cfg.SummaryModel, base, WithTemperature(0.7), WithMaxTokens(800)),
		Proof:   NewOpenAI(cfg.APIKey, cfg.ProofModel, base, WithTemperature(0.2), WithMaxTokens(1000)),
		Comment: NewOpenAI(cfg.APIKey, cfg.CommentModel, base, WithTemperature(0.8), WithMaxTokens(400)),
		Vision:  NewOpenAI(cfg.APIKey, cfg.VisionModel, base, WithTemperature(0.5)),
	}
}
