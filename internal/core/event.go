package core

import "time"

// ChatEvent is the platform-independent view of an inbound message. It is
// built once at the transport boundary so the services never touch the
// Telegram SDK's object model.
type ChatEvent struct {
	ChatID      int64
	MessageID   int
	SenderID    int64
	SenderName  string
	SenderIsBot bool
	Text        string
	Timestamp   time.Time

	// ReplyTo is the quoted message, if the event is a reply.
	ReplyTo *ChatEvent
}

// Record converts the event into a history record. The caller is expected to
// have filtered out commands, bot messages and empty text already.
func (e ChatEvent) Record() ChatMessage {
	return ChatMessage{
		Author:    e.SenderName,
		AuthorID:  e.SenderID,
		Text:      e.Text,
		Timestamp: e.Timestamp,
		MessageID: e.MessageID,
	}
}
