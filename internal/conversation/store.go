package conversation

import (
	"sync"
	"time"
)

// Store persists in-progress conversation records.
type Store interface {
	// Get returns the record for a sender, or ok=false when none exists.
	Get(senderID string) (Record, bool)

	// Put stores or replaces a sender's record.
	Put(record Record)

	// Delete removes a sender's record. Deleting a missing record is a no-op.
	Delete(senderID string)

	// Len returns the number of active records.
	Len() int
}

// staleAfter bounds how long an abandoned conversation survives.
const staleAfter = 24 * time.Hour

// MemoryStore is an in-memory Store. Conversations are short-lived,
// so losing them on restart only costs the sender one extra message.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

// Get implements Store.
func (s *MemoryStore) Get(senderID string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[senderID]
	return r, ok
}

// Put implements Store.
func (s *MemoryStore) Put(record Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.SenderID] = record
}

// Delete implements Store.
func (s *MemoryStore) Delete(senderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, senderID)
}

// Len implements Store.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Sweep removes records not touched since now minus the stale bound.
// Returns how many records were dropped.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-staleAfter)
	dropped := 0
	for id, r := range s.records {
		if r.UpdatedAt.Before(cutoff) {
			delete(s.records, id)
			dropped++
		}
	}
	return dropped
}
