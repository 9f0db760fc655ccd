package antiblock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcamposl/uniwabot-go/internal/config"
)

func defaultWindows() config.ScheduleConfig {
	var s config.ScheduleConfig
	for d := time.Monday; d <= time.Friday; d++ {
		s[d] = config.DayWindow{Enabled: true, Start: 8, End: 18}
	}
	s[time.Saturday] = config.DayWindow{Enabled: true, Start: 8, End: 12}
	s[time.Sunday] = config.DayWindow{Enabled: false}
	return s
}

func TestIsOpen(t *testing.T) {
	t.Parallel()

	sched := NewSchedule(defaultWindows(), time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"monday morning", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), true},
		{"monday before opening", time.Date(2026, 3, 2, 7, 59, 0, 0, time.UTC), false},
		{"monday at opening", time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), true},
		{"friday last hour", time.Date(2026, 3, 6, 17, 59, 0, 0, time.UTC), true},
		{"friday at closing", time.Date(2026, 3, 6, 18, 0, 0, 0, time.UTC), false},
		{"saturday morning", time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC), true},
		{"saturday afternoon", time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sched.IsOpen(tt.at))
		})
	}
}

func TestIsOpenHonorsTimezone(t *testing.T) {
	t.Parallel()

	laPaz, err := time.LoadLocation("America/La_Paz")
	require.NoError(t, err)
	sched := NewSchedule(defaultWindows(), laPaz)

	// 13:00 UTC on a Monday is 09:00 in La Paz (UTC-4): open.
	assert.True(t, sched.IsOpen(time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)))

	// 23:00 UTC is 19:00 in La Paz: closed.
	assert.False(t, sched.IsOpen(time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)))
}

func TestWindowAccessor(t *testing.T) {
	t.Parallel()

	sched := NewSchedule(defaultWindows(), time.UTC)
	sat := sched.Window(time.Saturday)
	assert.True(t, sat.Enabled)
	assert.Equal(t, 12, sat.End)
}
