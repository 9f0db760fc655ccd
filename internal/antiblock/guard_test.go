package antiblock

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dcamposl/uniwabot-go/internal/config"
)

func testCaps() config.LimitConfig {
	return config.LimitConfig{MaxPerDay: 60, MaxPerHour: 15, MaxPerSender: 5}
}

func TestGuardAdmitsFreshSender(t *testing.T) {
	t.Parallel()

	g := NewGuard(testCaps(), time.UTC)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	ok, limit := g.Admit("59170000001", now)
	assert.True(t, ok)
	assert.Equal(t, LimitNone, limit)
}

func TestGuardSenderCap(t *testing.T) {
	t.Parallel()

	g := NewGuard(testCaps(), time.UTC)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	for i := range 5 {
		ok, _ := g.Admit("59170000001", now)
		assert.True(t, ok, "send %d", i)
		g.Confirm("59170000001", now)
		now = now.Add(time.Minute)
	}

	ok, limit := g.Admit("59170000001", now)
	assert.False(t, ok)
	assert.Equal(t, LimitSender, limit)

	// Another sender is unaffected.
	ok, _ = g.Admit("59170000002", now)
	assert.True(t, ok)
}

func TestGuardSenderWindowSlides(t *testing.T) {
	t.Parallel()

	g := NewGuard(testCaps(), time.UTC)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	for range 5 {
		g.Confirm("59170000001", now)
	}
	ok, limit := g.Admit("59170000001", now)
	assert.False(t, ok)
	assert.Equal(t, LimitSender, limit)

	// An hour later the window has drained.
	later := now.Add(time.Hour + time.Second)
	ok, _ = g.Admit("59170000001", later)
	assert.True(t, ok)
}

func TestGuardHourlyCap(t *testing.T) {
	t.Parallel()

	g := NewGuard(testCaps(), time.UTC)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	for i := range 15 {
		g.Confirm(fmt.Sprintf("sender-%d", i), now)
	}

	ok, limit := g.Admit("fresh-sender", now)
	assert.False(t, ok)
	assert.Equal(t, LimitHourly, limit)
}

func TestGuardDailyCap(t *testing.T) {
	t.Parallel()

	g := NewGuard(config.LimitConfig{MaxPerDay: 10, MaxPerHour: 100, MaxPerSender: 100}, time.UTC)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	// Spread sends across hours so only the daily counter fills.
	for i := range 10 {
		g.Confirm("59170000001", now.Add(time.Duration(i)*90*time.Minute))
	}

	last := now.Add(10 * 90 * time.Minute)
	ok, limit := g.Admit("59170000001", last)
	assert.False(t, ok)
	assert.Equal(t, LimitDaily, limit)
}

func TestGuardDailyResetOnNewDay(t *testing.T) {
	t.Parallel()

	g := NewGuard(config.LimitConfig{MaxPerDay: 2, MaxPerHour: 100, MaxPerSender: 100}, time.UTC)
	day1 := time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)

	g.Confirm("a", day1)
	g.Confirm("a", day1.Add(time.Minute))
	ok, limit := g.Admit("a", day1.Add(2*time.Minute))
	assert.False(t, ok)
	assert.Equal(t, LimitDaily, limit)

	day2 := time.Date(2026, 3, 3, 0, 5, 0, 0, time.UTC)
	ok, _ = g.Admit("a", day2)
	assert.True(t, ok)
	assert.Zero(t, g.DailyCount(day2))
}

func TestGuardDailyCountTracksConfirms(t *testing.T) {
	t.Parallel()

	g := NewGuard(testCaps(), time.UTC)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	assert.Zero(t, g.DailyCount(now))
	g.Confirm("a", now)
	g.Confirm("b", now)
	assert.Equal(t, 2, g.DailyCount(now))
}

func TestGuardAdmitDoesNotConsume(t *testing.T) {
	t.Parallel()

	g := NewGuard(testCaps(), time.UTC)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	for range 20 {
		ok, _ := g.Admit("a", now)
		assert.True(t, ok)
	}
	assert.Zero(t, g.DailyCount(now))
}
