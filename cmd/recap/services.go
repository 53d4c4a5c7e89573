package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/recapbot/internal/config"
	"github.com/sandevgo/recapbot/internal/providers/llm"
	"github.com/sandevgo/recapbot/internal/service/assistant"
	"github.com/sandevgo/recapbot/internal/service/chats"
	"github.com/sandevgo/recapbot/internal/service/convo"
	"github.com/sandevgo/recapbot/internal/service/digest"
	"github.com/sandevgo/recapbot/internal/service/history"
	"github.com/sandevgo/recapbot/internal/transport/telegram"
	"github.com/sandevgo/recapbot/pkg/log"
	"github.com/sandevgo/recapbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration, fails fast on anything invalid
	appCfg := config.NewAppConfig(ctx)
	tgCfg := config.NewTelegramConfig(ctx)
	aiCfg := config.NewOpenAIConfig(ctx)
	digestCfg := config.NewDigestConfig(ctx)

	// 2. In-memory chat state. The registry cascades chat removal into the
	// history log and image conversations.
	store := history.NewStore(appCfg.HistoryCapacity)
	buffers := convo.NewBuffers(appCfg.ConversationPairs)
	registry := chats.NewRegistry()
	registry.OnRemove(store.Clear)
	registry.OnRemove(buffers.ResetChat)

	// 3. AI providers, one per bot task
	providers := llm.NewProviders(ctx, aiCfg)

	// 4. Assistant service
	asst := assistant.New(assistant.Providers{
		Chat:    providers.Chat,
		Summary: providers.Summary,
		Proof:   providers.Proof,
		Comment: providers.Comment,
		Vision:  providers.Vision,
	}, buffers, assistant.NewTokenCounter(), appCfg.ConciseReplies)

	// 5. Telegram transport
	bot, err := telegram.NewBot(ctx, tgCfg, asst, store, registry, appCfg.HistoryCapacity)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}
	services = append(services, bot)

	// 6. Digest scheduler, delivering through the bot's sender
	scheduler := digest.NewScheduler(digestCfg, registry, store, asst, bot.Sender(), appCfg.HistoryCapacity)
	services = append(services, scheduler)

	return services
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
