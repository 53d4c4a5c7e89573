package telegram

import (
	"strings"

	"github.com/sandevgo/recapbot/internal/core"
	tele "gopkg.in/telebot.v3"
)

// buildEvent flattens an inbound telebot message into a core.ChatEvent. The
// event is the only shape the services ever see.
func buildEvent(m *tele.Message) core.ChatEvent {
	if m == nil {
		return core.ChatEvent{}
	}

	ev := core.ChatEvent{
		MessageID: m.ID,
		Text:      m.Text,
		Timestamp: m.Time(),
	}
	if m.Chat != nil {
		ev.ChatID = m.Chat.ID
	}
	if m.Sender != nil {
		ev.SenderID = m.Sender.ID
		ev.SenderName = displayName(m.Sender)
		ev.SenderIsBot = m.Sender.IsBot
	}
	if m.ReplyTo != nil {
		quoted := buildEvent(m.ReplyTo)
		ev.ReplyTo = &quoted
	}
	return ev
}

// displayName prefers the human-readable name and falls back to the handle.
func displayName(u *tele.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return "Unknown"
}

// isCommand reports whether the event text is a slash command. Commands are
// never stored as chat history.
func isCommand(text string) bool {
	return strings.HasPrefix(text, "/")
}

// storable applies the history admission rules: non-empty, non-command text
// from a human sender.
func storable(ev core.ChatEvent) bool {
	return ev.Text != "" && !ev.SenderIsBot && !isCommand(ev.Text)
}
