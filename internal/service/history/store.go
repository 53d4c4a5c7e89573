// Package history keeps a bounded, time-queryable log of observed messages
// per chat. Everything lives in memory; a restart starts from an empty log.
package history

import (
	"sync"
	"time"

	"github.com/sandevgo/recapbot/internal/core"
)

// chatLog is the per-chat record sequence. Each log carries its own lock so
// busy chats never contend with each other.
type chatLog struct {
	mu      sync.RWMutex
	records []core.ChatMessage
}

// Store is the process-wide registry of per-chat logs.
type Store struct {
	mu       sync.RWMutex
	logs     map[int64]*chatLog
	capacity int
}

func NewStore(capacity int) *Store {
	return &Store{
		logs:     make(map[int64]*chatLog),
		capacity: capacity,
	}
}

func (s *Store) log(chatID int64, create bool) *chatLog {
	s.mu.RLock()
	l, ok := s.logs[chatID]
	s.mu.RUnlock()
	if ok || !create {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok = s.logs[chatID]; ok {
		return l
	}
	l = &chatLog{records: make([]core.ChatMessage, 0, s.capacity)}
	s.logs[chatID] = l
	return l
}

// Append adds a record to the chat's log, evicting from the head once the
// log exceeds capacity. Records with empty text are never stored.
func (s *Store) Append(chatID int64, msg core.ChatMessage) {
	if msg.Text == "" {
		return
	}

	l := s.log(chatID, true)
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, msg)
	if over := len(l.records) - s.capacity; over > 0 {
		l.records = append(l.records[:0], l.records[over:]...)
	}
}

// Query returns, in insertion order, the suffix of up to limit most-recent
// records whose timestamp falls within the trailing window. The limit is
// applied BEFORE the time filter: this bounds the scan to the log's tail and
// matches the recent-activity use case, at the cost of possibly skipping
// older in-window records. Callers rely on that order.
func (s *Store) Query(chatID int64, now time.Time, window time.Duration, limit int) []core.ChatMessage {
	return s.QueryAuthor(chatID, now, window, limit, 0)
}

// QueryAuthor is Query restricted to a single author. An authorID of zero
// means no author filter.
func (s *Store) QueryAuthor(chatID int64, now time.Time, window time.Duration, limit int, authorID int64) []core.ChatMessage {
	l := s.log(chatID, false)
	if l == nil || limit <= 0 {
		return nil
	}

	cutoff := now.Add(-window)

	l.mu.RLock()
	defer l.mu.RUnlock()

	tail := l.records
	if len(tail) > limit {
		tail = tail[len(tail)-limit:]
	}

	var out []core.ChatMessage
	for _, rec := range tail {
		if rec.Timestamp.Before(cutoff) {
			continue
		}
		if authorID != 0 && rec.AuthorID != authorID {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Len reports the number of records currently held for a chat.
func (s *Store) Len(chatID int64) int {
	l := s.log(chatID, false)
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Clear drops the chat's log entirely, used when the bot leaves a chat.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.logs, chatID)
}
