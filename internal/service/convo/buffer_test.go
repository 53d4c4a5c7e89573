package convo

import (
	"fmt"
	"testing"

	"github.com/sandevgo/recapbot/internal/core"
)

func pair(n int) (core.Message, core.Message) {
	return core.TextMessage(core.RoleUser, fmt.Sprintf("u%d", n)),
		core.TextMessage(core.RoleAssistant, fmt.Sprintf("a%d", n))
}

func TestConversationID(t *testing.T) {
	if got := ConversationID(100, 7); got != "100:7" {
		t.Errorf("ConversationID = %q, want 100:7", got)
	}
	// Without a user identity the buffer key degrades to the chat alone.
	if got := ConversationID(100, 0); got != "100" {
		t.Errorf("ConversationID fallback = %q, want 100", got)
	}
}

func TestBuffers_AppendTurnEvictsOldestPair(t *testing.T) {
	b := NewBuffers(2)

	for i := 1; i <= 3; i++ {
		u, a := pair(i)
		b.AppendTurn("c", u, a)
	}

	got := b.Snapshot("c")
	want := []string{"u2", "a2", "u3", "a3"}
	if len(got) != len(want) {
		t.Fatalf("snapshot has %d entries, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Content != w {
			t.Errorf("entry %d = %q, want %q", i, got[i].Content, w)
		}
	}
}

func TestBuffers_RoleAlternationPreserved(t *testing.T) {
	b := NewBuffers(3)
	for i := 0; i < 10; i++ {
		u, a := pair(i)
		b.AppendTurn("c", u, a)
	}

	got := b.Snapshot("c")
	if len(got) != 6 {
		t.Fatalf("snapshot has %d entries, want 6", len(got))
	}
	for i, m := range got {
		want := core.RoleUser
		if i%2 == 1 {
			want = core.RoleAssistant
		}
		if m.Role != want {
			t.Errorf("entry %d role = %q, want %q", i, m.Role, want)
		}
	}
}

func TestBuffers_SnapshotIsACopy(t *testing.T) {
	b := NewBuffers(5)
	u, a := pair(1)
	b.AppendTurn("c", u, a)

	snap := b.Snapshot("c")
	snap[0].Content = "mutated"

	if got := b.Snapshot("c"); got[0].Content != "u1" {
		t.Errorf("buffer mutated through snapshot: %q", got[0].Content)
	}
}

func TestBuffers_SnapshotUnknownIDIsEmpty(t *testing.T) {
	b := NewBuffers(5)
	if got := b.Snapshot("missing"); got != nil {
		t.Errorf("expected nil snapshot, got %v", got)
	}
}

func TestBuffers_Reset(t *testing.T) {
	b := NewBuffers(5)
	u, a := pair(1)
	b.AppendTurn("c", u, a)

	b.Reset("c")

	if got := b.Snapshot("c"); len(got) != 0 {
		t.Errorf("expected empty buffer after reset, got %d entries", len(got))
	}

	// The buffer is usable again after reset.
	u2, a2 := pair(2)
	b.AppendTurn("c", u2, a2)
	if got := b.Snapshot("c"); len(got) != 2 {
		t.Errorf("expected 2 entries after re-append, got %d", len(got))
	}
}

func TestBuffers_IndependentConversations(t *testing.T) {
	b := NewBuffers(2)
	u, a := pair(1)
	b.AppendTurn(ConversationID(1, 10), u, a)
	b.AppendTurn(ConversationID(1, 20), u, a)

	b.Reset(ConversationID(1, 10))

	if got := b.Snapshot(ConversationID(1, 20)); len(got) != 2 {
		t.Errorf("reset of one conversation affected another: %d entries", len(got))
	}
}

func TestBuffers_ResetChatDropsAllUsers(t *testing.T) {
	b := NewBuffers(2)
	u, a := pair(1)
	b.AppendTurn(ConversationID(1, 10), u, a)
	b.AppendTurn(ConversationID(1, 20), u, a)
	b.AppendTurn(ConversationID(1, 0), u, a)
	b.AppendTurn(ConversationID(12, 10), u, a)

	b.ResetChat(1)

	for _, id := range []string{ConversationID(1, 10), ConversationID(1, 20), ConversationID(1, 0)} {
		if got := b.Snapshot(id); len(got) != 0 {
			t.Errorf("conversation %s survived chat reset: %d entries", id, len(got))
		}
	}
	// Chat 12 shares the "1" prefix as text but is a different chat.
	if got := b.Snapshot(ConversationID(12, 10)); len(got) != 2 {
		t.Errorf("chat 12 was affected by resetting chat 1: %d entries", len(got))
	}
}
