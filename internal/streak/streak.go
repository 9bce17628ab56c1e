// Package streak derives consecutive-day activity counts from a log of
// active dates.
package streak

import "time"

// KeyLayout is the calendar-date format used for activity keys.
const KeyLayout = "2006-01-02"

// MaxDays caps how far back Calculate walks.
const MaxDays = 365

// Set is a collection of activity date keys.
type Set map[string]struct{}

// NewSet builds a Set from date keys; duplicates collapse.
func NewSet(keys ...string) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add records key.
func (s Set) Add(key string) { s[key] = struct{}{} }

// Has reports whether key was recorded.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Key formats t as a date key in t's own location. Callers convert t to the
// user's timezone first.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// Calculate counts consecutive days present in days, walking back from
// today. A missing today yields 0.
func Calculate(days Set, today time.Time) int {
	n := 0
	for offset := 0; offset < MaxDays; offset++ {
		if !days.Has(Key(today.AddDate(0, 0, -offset))) {
			break
		}
		n++
	}
	return n
}

// MissedYesterday reports whether yesterday is absent from days while the
// day before it is present: the single gap a streak freeze can cover.
func MissedYesterday(days Set, today time.Time) bool {
	return !days.Has(Key(today.AddDate(0, 0, -1))) && days.Has(Key(today.AddDate(0, 0, -2)))
}
