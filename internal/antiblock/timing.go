// Package antiblock implements the behaviors that keep the WhatsApp
// number looking human: reading and typing delays scaled to content,
// advisory send caps, and an attendance schedule.
package antiblock

import (
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dcamposl/uniwabot-go/internal/config"
)

// Complexity bonuses added to the base reading time before clamping.
const (
	bonusMultiline  = 500 * time.Millisecond
	bonusDocNumber  = 300 * time.Millisecond
	bonusLongText   = 200 * time.Millisecond
	longTextMinWords = 6
)

// docNumberPattern matches a national ID digit run.
var docNumberPattern = regexp.MustCompile(`\d{7,8}`)

// Timing computes human-plausible delays from message content.
// The random source is injectable so tests stay deterministic.
type Timing struct {
	cfg  config.DelayConfig
	intn func(n int) int
}

// NewTiming creates a Timing using the shared random source.
func NewTiming(cfg config.DelayConfig) *Timing {
	return NewTimingWithRand(cfg, rand.IntN)
}

// NewTimingWithRand creates a Timing with a custom random int source.
// intn must return a value in [0, n).
func NewTimingWithRand(cfg config.DelayConfig, intn func(n int) int) *Timing {
	return &Timing{cfg: cfg, intn: intn}
}

// ReadDelay returns how long to wait before marking the message as read.
// Base time grows with message length, complexity bonuses are added,
// the sum is clamped to [MinRead, MaxRead] and jitter is applied last
// so the final value can exceed the clamp by at most the jitter.
func (t *Timing) ReadDelay(message string) time.Duration {
	base := time.Duration(utf8.RuneCountInString(message)) * t.cfg.ReadPerChar
	if base < t.cfg.MinRead {
		base = t.cfg.MinRead
	}

	var bonus time.Duration
	if strings.Contains(message, "\n") {
		bonus += bonusMultiline
	}
	if docNumberPattern.MatchString(message) {
		bonus += bonusDocNumber
	}
	if len(strings.Fields(message)) >= longTextMinWords {
		bonus += bonusLongText
	}

	total := base + bonus
	if total > t.cfg.MaxRead {
		total = t.cfg.MaxRead
	}
	return total + t.jitter(t.cfg.ReadJitter)
}

// TypingDelay returns how long to show the typing indicator before
// sending a reply of the given length.
func (t *Timing) TypingDelay(replyLen int) time.Duration {
	base := t.cfg.TypingBase + time.Duration(replyLen)*t.cfg.TypingPerChar
	if base < t.cfg.MinTyping {
		base = t.cfg.MinTyping
	}
	if base > t.cfg.MaxTyping {
		base = t.cfg.MaxTyping
	}
	return base + t.jitter(t.cfg.TypingJitter)
}

func (t *Timing) jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(t.intn(int(max)))
}
