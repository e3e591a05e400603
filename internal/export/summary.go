// Package export writes the life calendar to PDF and to JSON or YAML
// backups, and reads those backups back.
package export

import (
	"time"

	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/event"
)

// EventSummary is one line of the event table in an exported calendar.
type EventSummary struct {
	Event    event.Event
	Start    time.Time
	End      time.Time
	StartAge int
	// Weeks counts the grid cells the event is displayed in.
	Weeks int
	Valid bool
}

// Summary is the printable view of a calendar.
type Summary struct {
	Anchor     time.Time
	Model      calendar.RenderModel
	Events     []EventSummary
	LivedWeeks int
}

// BuildSummary combines a render model with the events it was built from.
// now decides how many weeks count as lived.
func BuildSummary(rm calendar.RenderModel, events []event.Event, now time.Time) Summary {
	shown := make(map[int64]int, len(events))
	lived := 0
	today := dateutil.FromTime(now)
	for _, c := range rm.Weeks {
		if c.Event != nil {
			shown[c.Event.ID]++
		}
		if !c.Bucket.Start.After(today) {
			lived++
		}
	}

	out := make([]EventSummary, 0, len(events))
	for _, e := range events {
		s := EventSummary{Event: e, Weeks: shown[e.ID]}
		if start, end, err := e.Range(); err == nil {
			s.Start, s.End, s.Valid = start, end, true
			s.StartAge = dateutil.YearsBetween(rm.Anchor, start)
		}
		out = append(out, s)
	}

	return Summary{
		Anchor:     rm.Anchor,
		Model:      rm,
		Events:     out,
		LivedWeeks: lived,
	}
}
