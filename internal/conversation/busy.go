package conversation

import "sync"

// BusyGuard marks senders whose message is currently being processed.
// Delays stretch processing over several seconds, and a second message
// arriving meanwhile must not start a parallel flow for the sender.
type BusyGuard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

// NewBusyGuard creates an empty BusyGuard.
func NewBusyGuard() *BusyGuard {
	return &BusyGuard{busy: make(map[string]struct{})}
}

// TryAcquire marks the sender busy. Returns false if already busy.
func (b *BusyGuard) TryAcquire(senderID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.busy[senderID]; ok {
		return false
	}
	b.busy[senderID] = struct{}{}
	return true
}

// Release clears the sender's busy mark.
func (b *BusyGuard) Release(senderID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.busy, senderID)
}
