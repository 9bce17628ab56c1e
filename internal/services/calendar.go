package services

import (
	"time"

	"github.com/vytor/bondflash/internal/streak"
)

// Calendar resolves "today" in the installation's timezone.
type Calendar struct {
	Now      func() time.Time
	Location *time.Location
}

// NewCalendar returns a wall-clock Calendar in loc.
func NewCalendar(loc *time.Location) Calendar {
	return Calendar{Now: time.Now, Location: loc}
}

// Today returns the current instant in the calendar's location.
func (c Calendar) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	t := now()
	if c.Location != nil {
		t = t.In(c.Location)
	}
	return t
}

// Key returns today's activity date key.
func (c Calendar) Key() string {
	return streak.Key(c.Today())
}
