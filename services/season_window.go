package services

import (
	"time"
)

// SeasonWindow is the span of calendar days, in one timezone, in which
// league jobs post. Both the first and the last day are included in full.
type SeasonWindow struct {
	start    time.Time
	end      time.Time
	location *time.Location
}

// NewSeasonWindow creates a window from the first to the last day inclusive
func NewSeasonWindow(first, last time.Time, location *time.Location) *SeasonWindow {
	if location == nil {
		location = time.UTC
	}
	return &SeasonWindow{
		start:    time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, location),
		end:      time.Date(last.Year(), last.Month(), last.Day()+1, 0, 0, 0, 0, location),
		location: location,
	}
}

// Contains reports whether now falls inside the window
func (w *SeasonWindow) Contains(now time.Time) bool {
	local := now.In(w.location)
	return !local.Before(w.start) && local.Before(w.end)
}

// Location returns the window's timezone
func (w *SeasonWindow) Location() *time.Location {
	return w.location
}

func (w *SeasonWindow) String() string {
	return w.start.Format("2006-01-02") + ".." + w.end.AddDate(0, 0, -1).Format("2006-01-02") + " " + w.location.String()
}
