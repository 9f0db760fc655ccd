package conversation

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Deduplicator suppresses repeated identical messages from the same
// sender inside a time window. WhatsApp clients resend on flaky
// connections and students double-tap send; answering twice looks
// robotic and doubles the send-cap cost.
type Deduplicator struct {
	mu         sync.Mutex
	window     time.Duration
	maxEntries int
	seen       map[string]time.Time
}

// NewDeduplicator creates a Deduplicator. maxEntries bounds memory;
// when exceeded, expired entries are evicted first, then the oldest.
func NewDeduplicator(window time.Duration, maxEntries int) *Deduplicator {
	if maxEntries <= 0 {
		maxEntries = 4096
	}
	return &Deduplicator{
		window:     window,
		maxEntries: maxEntries,
		seen:       make(map[string]time.Time),
	}
}

// IsDuplicate records the message and reports whether the same sender
// sent the same text inside the window.
func (d *Deduplicator) IsDuplicate(senderID, message string, now time.Time) bool {
	key := dedupKey(senderID, message)

	d.mu.Lock()
	defer d.mu.Unlock()

	last, ok := d.seen[key]
	duplicate := ok && now.Sub(last) < d.window

	if !duplicate {
		if len(d.seen) >= d.maxEntries {
			d.evict(now)
		}
		d.seen[key] = now
	}
	return duplicate
}

// Len returns the number of tracked entries.
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.seen)
}

// evict drops expired entries, falling back to the oldest entry when
// nothing has expired yet. Must be called with the lock held.
func (d *Deduplicator) evict(now time.Time) {
	cutoff := now.Add(-d.window)
	for key, ts := range d.seen {
		if ts.Before(cutoff) {
			delete(d.seen, key)
		}
	}
	if len(d.seen) < d.maxEntries {
		return
	}

	var oldestKey string
	var oldest time.Time
	for key, ts := range d.seen {
		if oldestKey == "" || ts.Before(oldest) {
			oldestKey = key
			oldest = ts
		}
	}
	delete(d.seen, oldestKey)
}

func dedupKey(senderID, message string) string {
	sum := sha256.Sum256([]byte(senderID + "\x00" + message))
	return hex.EncodeToString(sum[:])
}
