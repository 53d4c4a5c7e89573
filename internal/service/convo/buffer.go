// Package convo tracks bounded multi-turn context for image-analysis
// conversations, one buffer per (chat, user) pair.
package convo

import (
	"strconv"
	"strings"
	"sync"

	"github.com/sandevgo/recapbot/internal/core"
)

// Buffers is the registry of conversation histories. A single coarse lock
// guards the map and the entry slices; it is held only across in-memory
// mutation, never across a network call.
type Buffers struct {
	mu       sync.Mutex
	buffers  map[string][]core.Message
	maxPairs int
}

func NewBuffers(maxPairs int) *Buffers {
	return &Buffers{
		buffers:  make(map[string][]core.Message),
		maxPairs: maxPairs,
	}
}

// ConversationID builds the composite buffer key. When the user identity is
// missing it falls back to the chat id alone, which makes all anonymous
// senders in that chat share one buffer. That mirrors the channel/anonymous
// semantics intentionally; do not "fix" it here.
func ConversationID(chatID, userID int64) string {
	if userID == 0 {
		return strconv.FormatInt(chatID, 10)
	}
	return strconv.FormatInt(chatID, 10) + ":" + strconv.FormatInt(userID, 10)
}

// AppendTurn records one completed exchange: the user entry followed by the
// assistant entry. The oldest pair is evicted once the buffer exceeds its
// pair capacity.
func (b *Buffers) AppendTurn(id string, user, assistant core.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := append(b.buffers[id], user, assistant)
	if max := b.maxPairs * 2; len(entries) > max {
		entries = entries[len(entries)-max:]
	}
	b.buffers[id] = entries
}

// Snapshot returns a copy of the buffer for use in one outbound request. The
// copy is taken under the lock so concurrent appends cannot interleave
// mid-read.
func (b *Buffers) Snapshot(id string) []core.Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := b.buffers[id]
	if len(entries) == 0 {
		return nil
	}
	out := make([]core.Message, len(entries))
	copy(out, entries)
	return out
}

// Reset discards the conversation entirely.
func (b *Buffers) Reset(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buffers, id)
}

// ResetChat discards every conversation belonging to the chat, used when the
// bot leaves a chat.
func (b *Buffers) ResetChat(chatID int64) {
	prefix := strconv.FormatInt(chatID, 10)

	b.mu.Lock()
	defer b.mu.Unlock()
	for id := range b.buffers {
		if id == prefix || strings.HasPrefix(id, prefix+":") {
			delete(b.buffers, id)
		}
	}
}
