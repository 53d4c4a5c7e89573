// Package chats tracks which chats the bot currently considers itself
// present in. The set lives for the process lifetime only.
package chats

import (
	"sort"
	"sync"
)

// Registry is the active-chat set. OnRemove hooks let owners of per-chat
// state (history log, digest state) discard it when the bot leaves a chat.
type Registry struct {
	mu       sync.RWMutex
	active   map[int64]struct{}
	onRemove []func(chatID int64)
}

func NewRegistry() *Registry {
	return &Registry{active: make(map[int64]struct{})}
}

// OnRemove registers a cleanup hook invoked after a chat is unregistered.
// Hooks must be registered before the registry is in use.
func (r *Registry) OnRemove(fn func(chatID int64)) {
	r.onRemove = append(r.onRemove, fn)
}

func (r *Registry) Register(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[chatID] = struct{}{}
}

// Unregister removes the chat and cascades to the registered cleanup hooks.
// Unknown chats are a no-op.
func (r *Registry) Unregister(chatID int64) {
	r.mu.Lock()
	_, ok := r.active[chatID]
	delete(r.active, chatID)
	r.mu.Unlock()

	if !ok {
		return
	}
	for _, fn := range r.onRemove {
		fn(chatID)
	}
}

func (r *Registry) IsActive(chatID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.active[chatID]
	return ok
}

// List returns the active chat ids in stable order.
func (r *Registry) List() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int64, 0, len(r.active))
	for id := range r.active {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
