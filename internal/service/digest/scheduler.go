// Package digest decides, once per tick, whether each active chat is due for
// a proactive summary, and sends at most one per chat per calendar day.
package digest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sandevgo/recapbot/internal/config"
	"github.com/sandevgo/recapbot/internal/core"
	"github.com/sandevgo/recapbot/internal/service/chats"
	"github.com/sandevgo/recapbot/internal/service/history"
	"github.com/sandevgo/recapbot/pkg/log"
)

// Summarizer turns a transcript into digest text.
type Summarizer interface {
	Summarize(ctx context.Context, msgs []core.ChatMessage) (string, error)
}

type Scheduler struct {
	cfg        *config.DigestConfig
	registry   *chats.Registry
	store      *history.Store
	summarizer Summarizer
	sender     core.Sender
	loc        *time.Location
	queryLimit int

	mu       sync.Mutex
	lastSent map[int64]string // chat id -> local calendar date of last digest
	cron     *cron.Cron
}

func NewScheduler(
	cfg *config.DigestConfig,
	registry *chats.Registry,
	store *history.Store,
	summarizer Summarizer,
	sender core.Sender,
	queryLimit int,
) *Scheduler {
	s := &Scheduler{
		cfg:        cfg,
		registry:   registry,
		store:      store,
		summarizer: summarizer,
		sender:     sender,
		loc:        cfg.Location(),
		queryLimit: queryLimit,
		lastSent:   make(map[int64]string),
	}
	// Leaving a chat discards its digest state along with its history.
	registry.OnRemove(s.clear)
	return s
}

// Start schedules the periodic tick, firing once immediately. It returns
// after scheduling; the cron runner owns the recurring work.
func (s *Scheduler) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().
		Int("start_hour", s.cfg.StartHour).
		Int("end_hour", s.cfg.EndHour).
		Str("timezone", s.cfg.Timezone).
		Msg("starting digest scheduler")

	s.cron = cron.New(cron.WithLocation(s.loc))
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.cfg.Interval), func() {
		s.Tick(ctx, time.Now())
	}); err != nil {
		return fmt.Errorf("schedule digest tick: %w", err)
	}
	s.cron.Start()

	go s.Tick(ctx, time.Now())
	return nil
}

func (s *Scheduler) Shutdown(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		log.FromCtx(ctx).Warn().Msg("digest scheduler stop timed out")
	}
	return nil
}

// Tick evaluates every active chat independently. A failure for one chat is
// logged and never blocks the rest of the tick.
func (s *Scheduler) Tick(ctx context.Context, now time.Time) {
	local := now.In(s.loc)
	if hour := local.Hour(); hour < s.cfg.StartHour || hour >= s.cfg.EndHour {
		return
	}
	today := local.Format(time.DateOnly)

	for _, chatID := range s.registry.List() {
		s.processChat(ctx, chatID, now, today)
	}
}

func (s *Scheduler) processChat(ctx context.Context, chatID int64, now time.Time, today string) {
	logger := log.FromCtx(ctx).With().Int64("chat_id", chatID).Logger()

	if s.sentOn(chatID) == today {
		return
	}

	msgs := s.store.Query(chatID, now, s.cfg.Window(), s.queryLimit)
	if len(msgs) == 0 {
		// Nothing to digest; the chat stays eligible for later ticks.
		return
	}

	summary, err := s.summarizer.Summarize(ctx, msgs)
	if err != nil {
		logger.Error().Err(err).Msg("failed to generate scheduled digest")
		return
	}

	text := fmt.Sprintf("📅 **Daily Summary (%s)**\n\n%s", today, summary)
	if err := s.sender.SendMarkdown(ctx, chatID, text); err != nil {
		// Not recorded as sent; the next in-window tick retries.
		logger.Error().Err(err).Msg("failed to deliver scheduled digest")
		return
	}

	s.markSent(chatID, today)
	logger.Info().Int("messages", len(msgs)).Msg("daily digest sent")
}

func (s *Scheduler) sentOn(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSent[chatID]
}

func (s *Scheduler) markSent(chatID int64, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSent[chatID] = date
}

func (s *Scheduler) clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.lastSent, chatID)
}
