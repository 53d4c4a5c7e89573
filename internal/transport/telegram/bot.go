package telegram

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/sandevgo/recapbot/internal/config"
	"github.com/sandevgo/recapbot/internal/service/assistant"
	"github.com/sandevgo/recapbot/internal/service/chats"
	"github.com/sandevgo/recapbot/internal/service/convo"
	"github.com/sandevgo/recapbot/internal/service/history"
	"github.com/sandevgo/recapbot/pkg/log"
	"github.com/sandevgo/recapbot/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

const summaryWindow = 24 * time.Hour
const commentWindow = time.Hour

const (
	summaryApology = "Sorry, I couldn't generate a summary at this time."
	proofApology   = "Sorry, I couldn't verify that statement at this time."
	commentApology = "Sorry, I couldn't generate a comment at this time."
	answerApology  = "Sorry, I couldn't answer that question at this time."
	roastApology   = "Sorry, I couldn't roast that post at this time."
	visionApology  = "Sorry, I couldn't analyze the image at this time."
)

const (
	proofUsage = "Please use this command as a reply to a user message containing a statement to verify."
	gptUsage   = "Please use this command as a reply to a user message containing a question to answer."
	roastUsage = "Please use this command as a reply to a user message containing a post to roast."
)

const welcomeText = "👋 Hello! I'm an AI-powered chat assistant. " +
	"I can summarize messages, verify facts, answer questions, and more.\n\n" +
	"Add me to a group chat and grant me admin rights to use all my features. " +
	"Type /help to see what I can do!"

const groupWelcomeText = "👋 Hello everyone! I've been added to this group.\n\n" +
	"I'm an AI-powered chat assistant. I can summarize messages, " +
	"verify facts, answer questions, and more.\n\n" +
	"I'll automatically post a daily summary between 20:00-22:00 London time.\n\n" +
	"Type /help to see what I can do!"

const helpText = "🤖 **Bot User Guide** 🤖\n\n" +
	"➠ Add the bot to your group chat and grant it administrator rights.\n" +
	"➠ Between 20:00 - 22:00 (London Time) the bot will automatically publish " +
	"a chat summary by analyzing the last 24 hours of messages using AI.\n" +
	"➠ The bot cannot view messages posted before it was added to the chat.\n" +
	"➠ You can use manual commands in the chat (see below).\n\n" +
	"**Available Commands**\n" +
	"/start - start interacting with the bot\n" +
	"/help - display this menu\n\n" +
	"**Group Chat Commands**\n" +
	"/summary - prepare a summary of the group's messages from the last 24h\n" +
	"/proof - ↩️ verify a statement for truthfulness\n" +
	"/comment - comment on the current discussion topic\n" +
	"/gpt - ↩️ answer a question using AI\n" +
	"/roast - ↩️ roast a post, with love\n" +
	"/reset - forget your image-analysis conversation\n\n" +
	"↩️ — commands should be sent as replies to user (not bot) messages posted after the bot was added to the chat"

type Bot struct {
	bot        *tele.Bot
	cfg        *config.TelegramConfig
	assistant  *assistant.Assistant
	store      *history.Store
	registry   *chats.Registry
	sender     *Sender
	queryLimit int
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	asst *assistant.Assistant,
	store *history.Store,
	registry *chats.Registry,
	queryLimit int,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	// The Bot API is flaky right after deploys; retry the bootstrap.
	var b *tele.Bot
	err := retry.NewDefaultRetrier().Do(ctx, func() error {
		var err error
		b, err = tele.NewBot(pref)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:        b,
		cfg:        cfg,
		assistant:  asst,
		store:      store,
		registry:   registry,
		sender:     NewSender(b),
		queryLimit: queryLimit,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle("/help", bot.handleHelp)
	b.Handle("/summary", bot.handleSummary)
	b.Handle("/proof", bot.handleProof)
	b.Handle("/comment", bot.handleComment)
	b.Handle("/gpt", bot.handleGPT)
	b.Handle("/roast", bot.handleRoast)
	b.Handle("/reset", bot.handleReset)
	b.Handle(tele.OnText, bot.handleText)
	b.Handle(tele.OnPhoto, bot.handlePhoto)
	b.Handle(tele.OnAddedToGroup, bot.handleAddedToGroup)
	b.Handle(tele.OnUserJoined, bot.handleUserJoined)
	b.Handle(tele.OnUserLeft, bot.handleUserLeft)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// Sender exposes the outbound delivery path, shared with the digest scheduler.
func (b *Bot) Sender() *Sender {
	return b.sender
}

func (b *Bot) ctx(c tele.Context) context.Context {
	return c.Get(baseContextKey).(context.Context)
}

// reply renders Markdown and answers in the originating chat.
func (b *Bot) reply(c tele.Context, md string) error {
	return b.sender.send(b.ctx(c), c.Chat(), md)
}

func (b *Bot) handleStart(c tele.Context) error {
	b.registry.Register(c.Chat().ID)
	return c.Send(welcomeText)
}

func (b *Bot) handleHelp(c tele.Context) error {
	return b.reply(c, helpText)
}

func (b *Bot) handleSummary(c tele.Context) error {
	ctx := b.ctx(c)
	_ = c.Notify(tele.Typing)

	msgs := b.store.Query(c.Chat().ID, time.Now(), summaryWindow, b.queryLimit)
	if len(msgs) == 0 {
		return c.Send("No recent messages found to summarize.")
	}

	summary, err := b.assistant.Summarize(ctx, msgs)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("failed to generate summary")
		return c.Send(summaryApology)
	}
	return b.reply(c, fmt.Sprintf("📊 **Group Chat Summary**\n\n%s", summary))
}

func (b *Bot) handleProof(c tele.Context) error {
	ctx := b.ctx(c)

	statement, ok := repliedUserText(c)
	if !ok {
		return c.Send(proofUsage)
	}
	_ = c.Notify(tele.Typing)

	result, err := b.assistant.Verify(ctx, statement)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("failed to verify statement")
		return c.Send(proofApology)
	}
	return b.reply(c, fmt.Sprintf("✅ **Fact Check**\n\nStatement: \"%s\"\n\n%s", statement, result))
}

func (b *Bot) handleComment(c tele.Context) error {
	ctx := b.ctx(c)
	_ = c.Notify(tele.Typing)

	msgs := b.store.Query(c.Chat().ID, time.Now(), commentWindow, b.queryLimit)
	if len(msgs) == 0 {
		return c.Send("I don't see any recent messages to comment on.")
	}

	comment, err := b.assistant.Comment(ctx, msgs)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("failed to generate comment")
		return c.Send(commentApology)
	}
	return b.reply(c, fmt.Sprintf("💬 **AI Commentary**\n\n%s", comment))
}

func (b *Bot) handleGPT(c tele.Context) error {
	ctx := b.ctx(c)

	question, ok := repliedUserText(c)
	if !ok {
		return c.Send(gptUsage)
	}
	_ = c.Notify(tele.Typing)

	recent := b.store.Query(c.Chat().ID, time.Now(), commentWindow, b.queryLimit)
	answer, err := b.assistant.Answer(ctx, question, recent)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("failed to answer question")
		return c.Send(answerApology)
	}
	return b.reply(c, fmt.Sprintf("🤖 **AI Response**\n\nQuestion: \"%s\"\n\n%s", question, answer))
}

func (b *Bot) handleRoast(c tele.Context) error {
	ctx := b.ctx(c)

	post, ok := repliedUserText(c)
	if !ok {
		return c.Send(roastUsage)
	}
	_ = c.Notify(tele.Typing)

	roast, err := b.assistant.Roast(ctx, post)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("failed to roast post")
		return c.Send(roastApology)
	}
	return b.reply(c, fmt.Sprintf("🔥 **Roast**\n\n%s", roast))
}

func (b *Bot) handleReset(c tele.Context) error {
	b.assistant.ResetConversation(convo.ConversationID(c.Chat().ID, c.Sender().ID))
	return c.Send("Your image-analysis conversation has been reset.")
}

func (b *Bot) handleText(c tele.Context) error {
	ev := buildEvent(c.Message())
	if !storable(ev) {
		return nil
	}
	b.store.Append(ev.ChatID, ev.Record())
	return nil
}

func (b *Bot) handlePhoto(c tele.Context) error {
	ctx := b.ctx(c)
	photo := c.Message().Photo
	if photo == nil {
		return nil
	}
	_ = c.Notify(tele.Typing)

	dataURL, err := b.downloadAsDataURL(&photo.File)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("failed to download photo")
		return c.Send(visionApology)
	}

	analysis, err := b.assistant.AnalyzeImage(ctx, assistant.ImageRequest{
		ConversationID: convo.ConversationID(c.Chat().ID, c.Sender().ID),
		ImageDataURL:   dataURL,
		Instructions:   c.Message().Caption,
	})
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", c.Chat().ID).Msg("failed to analyze image")
		return c.Send(visionApology)
	}
	return b.reply(c, analysis)
}

func (b *Bot) downloadAsDataURL(f *tele.File) (string, error) {
	rc, err := b.bot.File(f)
	if err != nil {
		return "", fmt.Errorf("fetch file: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func (b *Bot) handleAddedToGroup(c tele.Context) error {
	b.registry.Register(c.Chat().ID)
	log.FromCtx(b.ctx(c)).Info().Int64("chat_id", c.Chat().ID).Msg("joined group")
	return b.reply(c, groupWelcomeText)
}

// handleUserJoined covers groups that report the bot's arrival as a member
// join instead of an OnAddedToGroup event.
func (b *Bot) handleUserJoined(c tele.Context) error {
	joined := c.Message().UserJoined
	if joined == nil || joined.ID != b.bot.Me.ID {
		return nil
	}
	return b.handleAddedToGroup(c)
}

func (b *Bot) handleUserLeft(c tele.Context) error {
	left := c.Message().UserLeft
	if left == nil || left.ID != b.bot.Me.ID {
		return nil
	}
	// Cascades into the history and digest cleanup hooks.
	b.registry.Unregister(c.Chat().ID)
	log.FromCtx(b.ctx(c)).Info().Int64("chat_id", c.Chat().ID).Msg("removed from group")
	return nil
}

// repliedUserText extracts the text of the replied-to human message, the
// context required by /proof, /gpt and /roast. The check runs before any
// model call so misuse costs nothing.
func repliedUserText(c tele.Context) (string, bool) {
	replyTo := c.Message().ReplyTo
	if replyTo == nil || replyTo.Sender == nil || replyTo.Sender.IsBot {
		return "", false
	}
	if replyTo.Text == "" {
		return "", false
	}
	return replyTo.Text, true
}
