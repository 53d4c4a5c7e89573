package telegram

import (
	"testing"
	"time"

	"github.com/sandevgo/recapbot/internal/core"
	tele "gopkg.in/telebot.v3"
)

func TestBuildEvent(t *testing.T) {
	now := time.Now().Unix()
	m := &tele.Message{
		ID:       42,
		Unixtime: now,
		Text:     "the market looks rough",
		Chat:     &tele.Chat{ID: -100123},
		Sender:   &tele.User{ID: 7, FirstName: "Alice", LastName: "Smith"},
		ReplyTo: &tele.Message{
			ID:     41,
			Text:   "what do you think?",
			Chat:   &tele.Chat{ID: -100123},
			Sender: &tele.User{ID: 8, Username: "bob"},
		},
	}

	ev := buildEvent(m)

	if ev.ChatID != -100123 || ev.MessageID != 42 {
		t.Errorf("ids = (%d, %d), want (-100123, 42)", ev.ChatID, ev.MessageID)
	}
	if ev.SenderID != 7 || ev.SenderName != "Alice Smith" || ev.SenderIsBot {
		t.Errorf("sender = (%d, %q, %v)", ev.SenderID, ev.SenderName, ev.SenderIsBot)
	}
	if ev.Timestamp.Unix() != now {
		t.Errorf("timestamp = %v, want unix %d", ev.Timestamp, now)
	}
	if ev.ReplyTo == nil {
		t.Fatal("reply not captured")
	}
	if ev.ReplyTo.SenderName != "@bob" || ev.ReplyTo.Text != "what do you think?" {
		t.Errorf("reply = (%q, %q)", ev.ReplyTo.SenderName, ev.ReplyTo.Text)
	}
}

func TestBuildEventNil(t *testing.T) {
	if ev := buildEvent(nil); ev.ChatID != 0 || ev.Text != "" {
		t.Errorf("nil message should map to a zero event, got %+v", ev)
	}
}

func TestDisplayNameFallbacks(t *testing.T) {
	tests := []struct {
		name string
		user tele.User
		want string
	}{
		{"full name", tele.User{FirstName: "Alice", LastName: "Smith"}, "Alice Smith"},
		{"first only", tele.User{FirstName: "Alice"}, "Alice"},
		{"username only", tele.User{Username: "bob"}, "@bob"},
		{"nothing", tele.User{}, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayName(&tt.user); got != tt.want {
				t.Errorf("displayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStorable(t *testing.T) {
	tests := []struct {
		name string
		ev   core.ChatEvent
		want bool
	}{
		{"plain message", core.ChatEvent{Text: "hello"}, true},
		{"empty text", core.ChatEvent{Text: ""}, false},
		{"command", core.ChatEvent{Text: "/summary"}, false},
		{"bot message", core.ChatEvent{Text: "hello", SenderIsBot: true}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storable(tt.ev); got != tt.want {
				t.Errorf("storable(%+v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}
