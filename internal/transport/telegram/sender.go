package telegram

import (
	"context"
	"strings"

	"github.com/sandevgo/recapbot/pkg/conv"
	"github.com/sandevgo/recapbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

// Sender renders Markdown to Telegram HTML and delivers it in chunks. It is
// the one outbound path shared by command replies and scheduled digests.
type Sender struct {
	bot *tele.Bot
}

func NewSender(bot *tele.Bot) *Sender {
	return &Sender{bot: bot}
}

func (s *Sender) SendMarkdown(ctx context.Context, chatID int64, md string) error {
	return s.send(ctx, tele.ChatID(chatID), md)
}

func (s *Sender) send(ctx context.Context, to tele.Recipient, md string) error {
	logger := log.FromCtx(ctx)
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}

	for i, chunk := range conv.SplitMessage(html, maxTelegramMsgLen) {
		if _, err := s.bot.Send(to, chunk, tele.ModeHTML); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}
