package core

import "time"

const (
	BotName       = "RecapBot"
	BotUserAgent  = "RecapBot/0.1"
	RepositoryURL = "https://github.com/sandevgo/recapbot"
	Version       = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of an LLM conversation. Content carries plain text;
// Parts is set instead when the entry mixes text and images (vision requests).
type Message struct {
	Role    string
	Content string
	Parts   []ContentPart
}

// ContentPart is one element of a multi-part message body, following the
// OpenAI chat-completions content schema.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

func TextMessage(role, content string) Message {
	return Message{Role: role, Content: content}
}

// ChatMessage is one observed chat message. Records are immutable after
// creation; the history store only appends and evicts them.
type ChatMessage struct {
	Author    string
	AuthorID  int64
	Text      string
	Timestamp time.Time
	MessageID int
}
