package antiblock

import (
	"time"

	"github.com/dcamposl/uniwabot-go/internal/config"
)

// Schedule answers whether the bot attends at a given moment.
type Schedule struct {
	windows config.ScheduleConfig
	loc     *time.Location
}

// NewSchedule creates a Schedule evaluated in the given location.
func NewSchedule(windows config.ScheduleConfig, loc *time.Location) *Schedule {
	if loc == nil {
		loc = time.UTC
	}
	return &Schedule{windows: windows, loc: loc}
}

// IsOpen reports whether now falls inside the attendance window.
// Windows are half-open: [Start, End) in local hours.
func (s *Schedule) IsOpen(now time.Time) bool {
	local := now.In(s.loc)
	w := s.windows[local.Weekday()]
	if !w.Enabled {
		return false
	}
	hour := local.Hour()
	return hour >= w.Start && hour < w.End
}

// Window returns the attendance window for a weekday.
func (s *Schedule) Window(day time.Weekday) config.DayWindow {
	return s.windows[day]
}
