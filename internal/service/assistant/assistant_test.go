package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/recapbot/internal/core"
	"github.com/sandevgo/recapbot/internal/service/convo"
)

type mockProvider struct {
	reply   string
	err     error
	history [][]core.Message
}

func (m *mockProvider) Chat(ctx context.Context, history []core.Message) (core.Message, error) {
	cp := make([]core.Message, len(history))
	copy(cp, history)
	m.history = append(m.history, cp)
	if m.err != nil {
		return core.Message{}, m.err
	}
	return core.TextMessage(core.RoleAssistant, m.reply), nil
}

type byteCounter struct{}

func (byteCounter) Count(text string) int { return len(text) }

func newTestAssistant(p *mockProvider, concise bool) *Assistant {
	return New(Providers{
		Chat:    p,
		Summary: p,
		Proof:   p,
		Comment: p,
		Vision:  p,
	}, convo.NewBuffers(2), byteCounter{}, concise)
}

func chatMsgs(texts ...string) []core.ChatMessage {
	out := make([]core.ChatMessage, 0, len(texts))
	for i, text := range texts {
		out = append(out, core.ChatMessage{
			Author:    "alice",
			AuthorID:  1,
			Text:      text,
			Timestamp: time.Now(),
			MessageID: i,
		})
	}
	return out
}

func TestSummarize(t *testing.T) {
	p := &mockProvider{reply: "the recap"}
	a := newTestAssistant(p, false)

	got, err := a.Summarize(context.Background(), chatMsgs("hello", "world"))
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if got != "the recap" {
		t.Errorf("Summarize = %q", got)
	}

	sent := p.history[0]
	if len(sent) != 2 || sent[0].Role != core.RoleSystem {
		t.Fatalf("unexpected prompt shape: %+v", sent)
	}
	if !strings.Contains(sent[1].Content, "alice: hello") {
		t.Errorf("transcript missing message: %q", sent[1].Content)
	}
}

func TestSummarize_NoMessages(t *testing.T) {
	p := &mockProvider{reply: "unused"}
	a := newTestAssistant(p, false)

	_, err := a.Summarize(context.Background(), nil)
	if !errors.Is(err, ErrNoContext) {
		t.Fatalf("expected ErrNoContext, got %v", err)
	}
	if len(p.history) != 0 {
		t.Error("provider was called despite empty context")
	}
}

func TestConciseSuffixApplied(t *testing.T) {
	p := &mockProvider{reply: "ok"}
	a := newTestAssistant(p, true)

	if _, err := a.Verify(context.Background(), "the earth is flat"); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	system := p.history[0][0].Content
	if !strings.Contains(system, "extremely brief") {
		t.Errorf("concise suffix missing from system prompt: %q", system)
	}

	p2 := &mockProvider{reply: "ok"}
	a2 := newTestAssistant(p2, false)
	if _, err := a2.Verify(context.Background(), "the earth is flat"); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if strings.Contains(p2.history[0][0].Content, "extremely brief") {
		t.Error("concise suffix applied with concise disabled")
	}
}

func TestAnswer_WithContext(t *testing.T) {
	p := &mockProvider{reply: "42"}
	a := newTestAssistant(p, false)

	_, err := a.Answer(context.Background(), "what's the answer?", chatMsgs("deep thought is done"))
	if err != nil {
		t.Fatalf("Answer error: %v", err)
	}

	sent := p.history[0]
	if len(sent) != 3 {
		t.Fatalf("expected system+context+question, got %d messages", len(sent))
	}
	if !strings.Contains(sent[1].Content, "Recent chat context") {
		t.Errorf("context message malformed: %q", sent[1].Content)
	}
	if sent[2].Content != "what's the answer?" {
		t.Errorf("question message = %q", sent[2].Content)
	}
}

func TestProviderErrorPropagates(t *testing.T) {
	p := &mockProvider{err: errors.New("rate limited")}
	a := newTestAssistant(p, false)

	if _, err := a.Comment(context.Background(), chatMsgs("hi")); err == nil {
		t.Fatal("expected error from failing provider")
	}
}

func TestAnalyzeImage_RecordsTurnOnSuccess(t *testing.T) {
	p := &mockProvider{reply: "this is a cat"}
	a := newTestAssistant(p, false)
	id := convo.ConversationID(5, 9)

	got, err := a.AnalyzeImage(context.Background(), ImageRequest{
		ConversationID: id,
		ImageDataURL:   "data:image/png;base64,AAAA",
		Instructions:   "identify the animal",
	})
	if err != nil {
		t.Fatalf("AnalyzeImage error: %v", err)
	}
	if got != "this is a cat" {
		t.Errorf("AnalyzeImage = %q", got)
	}

	// Second turn must include the recorded first exchange.
	if _, err := a.AnalyzeImage(context.Background(), ImageRequest{
		ConversationID: id,
		ImageDataURL:   "data:image/png;base64,BBBB",
		Instructions:   "now the breed",
	}); err != nil {
		t.Fatalf("second AnalyzeImage error: %v", err)
	}

	second := p.history[1]
	// system + prior user + prior assistant + new user
	if len(second) != 4 {
		t.Fatalf("expected 4 messages on second turn, got %d", len(second))
	}
	if !strings.Contains(second[1].Content, "identify the animal") {
		t.Errorf("prior user turn missing: %q", second[1].Content)
	}
	if second[2].Content != "this is a cat" {
		t.Errorf("prior assistant turn = %q", second[2].Content)
	}
	if second[1].Parts != nil {
		t.Error("recorded turn should not replay the image payload")
	}
}

func TestAnalyzeImage_FailureLeavesBufferUntouched(t *testing.T) {
	p := &mockProvider{err: errors.New("timeout")}
	a := newTestAssistant(p, false)
	id := convo.ConversationID(5, 9)

	_, err := a.AnalyzeImage(context.Background(), ImageRequest{ConversationID: id, ImageDataURL: "data:image/png;base64,AAAA"})
	if err == nil {
		t.Fatal("expected error")
	}

	p.err = nil
	p.reply = "second try"
	if _, err := a.AnalyzeImage(context.Background(), ImageRequest{ConversationID: id, ImageDataURL: "data:image/png;base64,AAAA"}); err != nil {
		t.Fatalf("retry error: %v", err)
	}
	// system + new user only: the failed turn was not recorded.
	if got := len(p.history[1]); got != 2 {
		t.Errorf("expected 2 messages after failed first turn, got %d", got)
	}
}

func TestResetConversation(t *testing.T) {
	p := &mockProvider{reply: "analysis"}
	a := newTestAssistant(p, false)
	id := convo.ConversationID(1, 2)

	if _, err := a.AnalyzeImage(context.Background(), ImageRequest{ConversationID: id, ImageDataURL: "data:image/png;base64,AAAA"}); err != nil {
		t.Fatalf("AnalyzeImage error: %v", err)
	}
	a.ResetConversation(id)

	if _, err := a.AnalyzeImage(context.Background(), ImageRequest{ConversationID: id, ImageDataURL: "data:image/png;base64,BBBB"}); err != nil {
		t.Fatalf("AnalyzeImage error: %v", err)
	}
	// system + new user: no prior turns survived the reset.
	if got := len(p.history[1]); got != 2 {
		t.Errorf("expected 2 messages after reset, got %d", got)
	}
}

func TestTranscript_DropsOldestOverBudget(t *testing.T) {
	a := &Assistant{tokens: byteCounter{}}

	long := strings.Repeat("x", transcriptTokenBudget)
	msgs := chatMsgs(long, "recent one", "recent two")

	got := a.transcript(msgs)
	if strings.Contains(got, long) {
		t.Error("oldest oversized line should have been dropped")
	}
	if !strings.Contains(got, "recent two") {
		t.Error("most recent line must survive trimming")
	}
}
