package antiblock

import (
	"sync"
	"time"

	"github.com/dcamposl/uniwabot-go/internal/config"
)

// senderWindow is the trailing period used for the hourly caps.
const senderWindow = time.Hour

// Limit names the cap that rejected a message.
type Limit string

// Cap identifiers, also used as metric labels.
const (
	LimitNone   Limit = ""
	LimitDaily  Limit = "daily"
	LimitHourly Limit = "hourly"
	LimitSender Limit = "sender"
)

// Guard enforces the advisory send caps. All timestamps are passed in
// explicitly so behavior is reproducible under test.
type Guard struct {
	mu   sync.Mutex
	caps config.LimitConfig
	loc  *time.Location

	currentDay string
	dailyCount int
	global     []time.Time
	senders    map[string][]time.Time
}

// NewGuard creates a Guard. The location determines when a calendar
// day rolls over for the daily counter.
func NewGuard(caps config.LimitConfig, loc *time.Location) *Guard {
	if loc == nil {
		loc = time.UTC
	}
	return &Guard{
		caps:    caps,
		loc:     loc,
		senders: make(map[string][]time.Time),
	}
}

// Admit reports whether a reply to senderID may be sent at now.
// On rejection it names the cap that was hit. Admit does not consume
// capacity; call Confirm after the send actually happens.
func (g *Guard) Admit(senderID string, now time.Time) (bool, Limit) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rollDay(now)
	g.global = prune(g.global, now)
	g.pruneSender(senderID, now)

	if g.dailyCount >= g.caps.MaxPerDay {
		return false, LimitDaily
	}
	if g.caps.MaxPerHour > 0 && len(g.global) >= g.caps.MaxPerHour {
		return false, LimitHourly
	}
	if len(g.senders[senderID]) >= g.caps.MaxPerSender {
		return false, LimitSender
	}
	return true, LimitNone
}

// Confirm records a sent reply to senderID at now.
func (g *Guard) Confirm(senderID string, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rollDay(now)
	g.dailyCount++
	g.global = append(prune(g.global, now), now)
	g.senders[senderID] = append(prune(g.senders[senderID], now), now)
}

// DailyCount returns the number of replies sent on the current day.
func (g *Guard) DailyCount(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rollDay(now)
	return g.dailyCount
}

// rollDay resets the daily counter and the per-sender windows when the
// calendar day changes. Must be called with the lock held.
func (g *Guard) rollDay(now time.Time) {
	day := now.In(g.loc).Format(time.DateOnly)
	if day == g.currentDay {
		return
	}
	g.currentDay = day
	g.dailyCount = 0
	g.senders = make(map[string][]time.Time)
}

// pruneSender drops stale entries and removes empty windows so the map
// does not grow with one key per sender that ever wrote.
func (g *Guard) pruneSender(senderID string, now time.Time) {
	kept := prune(g.senders[senderID], now)
	if len(kept) == 0 {
		delete(g.senders, senderID)
		return
	}
	g.senders[senderID] = kept
}

func prune(window []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-senderWindow)
	kept := window[:0]
	for _, ts := range window {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}
