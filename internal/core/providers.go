package core

import "context"

// AIProvider is a request/response chat-completion backend. Implementations
// carry their own model selection and request timeout.
type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}

// Sender delivers outbound text to a chat, rendering Markdown for the
// platform. Implemented by the transport layer.
type Sender interface {
	SendMarkdown(ctx context.Context, chatID int64, md string) error
}
