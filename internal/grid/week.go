// Package grid maps calendar dates onto the fixed week grid of the life
// calendar and resolves which events fall into each week.
package grid

import (
	"time"

	"github.com/wiverson/life-calendar/internal/dateutil"
)

// DefaultWeeks is the number of weeks in one grid row.
const DefaultWeeks = 52

// WeekBucket is a 7-day interval starting at Start. End is Start + 6 days;
// both bounds are inclusive.
type WeekBucket struct {
	Index int       `json:"index"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether d falls within the week.
func (w WeekBucket) Contains(d time.Time) bool {
	d = dateutil.FromTime(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// BuildWeeks returns count consecutive weeks starting at anchor. A negative
// count builds DefaultWeeks weeks; zero builds none.
func BuildWeeks(anchor time.Time, count int) []WeekBucket {
	if count < 0 {
		count = DefaultWeeks
	}
	anchor = dateutil.FromTime(anchor)

	weeks := make([]WeekBucket, count)
	for i := range weeks {
		start := dateutil.AddDays(anchor, 7*i)
		weeks[i] = WeekBucket{
			Index: i,
			Start: start,
			End:   dateutil.AddDays(start, 6),
		}
	}
	return weeks
}
