package grid

import (
	"time"

	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/event"
	"github.com/wiverson/life-calendar/internal/logger"
)

// Overlaps reports whether the inclusive range [start, end] intersects the
// week. Bounds are compared as calendar dates.
func Overlaps(week WeekBucket, start, end time.Time) bool {
	start, end = dateutil.FromTime(start), dateutil.FromTime(end)
	return !week.Start.After(end) && !week.End.Before(start)
}

// Span is an event with its date range parsed once.
type Span struct {
	Event      event.Event
	Start, End time.Time
}

// ParseSpans parses the range of every event, in collection order. Events
// whose dates do not parse are skipped.
func ParseSpans(events []event.Event) []Span {
	spans := make([]Span, 0, len(events))
	for _, e := range events {
		start, end, err := e.Range()
		if err != nil {
			logger.Debug("skipping event with invalid dates", "id", e.ID, "err", err)
			continue
		}
		spans = append(spans, Span{Event: e, Start: dateutil.FromTime(start), End: dateutil.FromTime(end)})
	}
	return spans
}

// SpansForWeek returns the events of the spans that overlap week, in
// collection order.
func SpansForWeek(week WeekBucket, spans []Span) []event.Event {
	var out []event.Event
	for _, sp := range spans {
		if !week.Start.After(sp.End) && !week.End.Before(sp.Start) {
			out = append(out, sp.Event)
		}
	}
	return out
}

// EventsForWeek returns the events that overlap week, in collection order.
// Events whose dates do not parse are skipped.
func EventsForWeek(week WeekBucket, events []event.Event) []event.Event {
	return SpansForWeek(week, ParseSpans(events))
}

// FirstEventForWeek returns the first event overlapping week, or nil.
func FirstEventForWeek(week WeekBucket, events []event.Event) *event.Event {
	for _, e := range events {
		start, end, err := e.Range()
		if err != nil {
			continue
		}
		if Overlaps(week, start, end) {
			return &e
		}
	}
	return nil
}
