// Package ics converts life events to and from iCalendar files. Events are
// written as all-day VEVENTs whose DTEND is the day after the last day.
package ics

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/event"
	"github.com/wiverson/life-calendar/internal/logger"
	"github.com/wiverson/life-calendar/internal/stringutil"
)

// ProductID identifies lifecal as the producer of exported calendars.
const ProductID = "-//lifecal//life calendar//EN"

const uidDomain = "lifecal"

// Export writes events as an iCalendar document. Events whose dates do not
// parse are skipped.
func Export(w io.Writer, events []event.Event, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName("Life calendar")

	for _, e := range events {
		start, end, err := e.Range()
		if err != nil {
			logger.Warn("skipping event with invalid dates", "id", e.ID, "err", err)
			continue
		}

		ve := cal.AddEvent(UID(e))
		ve.SetDtStampTime(now.UTC())
		ve.SetSummary(e.Name)
		ve.SetAllDayStartAt(start)
		ve.SetAllDayEndAt(dateutil.AddDays(end, 1))
		if e.Color != "" {
			ve.SetColor(e.Color)
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

// UID returns the stable iCalendar UID of e.
func UID(e event.Event) string {
	slug := stringutil.Slugify(e.Name)
	if slug == "" {
		slug = "event"
	}
	return fmt.Sprintf("%d-%s@%s", e.ID, slug, uidDomain)
}

// Skipped describes a VEVENT that Parse could not turn into a form.
type Skipped struct {
	Summary string
	Reason  string
}

// Parse reads an iCalendar document into event forms ready for validation.
// Recurring events and events without a start date are skipped and
// reported. An exclusive all-day DTEND is turned back into the inclusive
// last day.
func Parse(r io.Reader) ([]calendar.Form, []Skipped, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, errors.New("empty calendar")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var (
		forms   []calendar.Form
		skipped []Skipped
	)
	for _, ve := range cal.Events() {
		f, reason := formFromVEvent(ve)
		if reason != "" {
			skipped = append(skipped, Skipped{Summary: f.Name, Reason: reason})
			continue
		}
		forms = append(forms, f)
	}

	logger.Debug("calendar parsed", "events", len(forms), "skipped", len(skipped))
	return forms, skipped, nil
}

func formFromVEvent(ve *ical.VEvent) (calendar.Form, string) {
	var f calendar.Form
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		f.Name = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyColor); p != nil {
		f.Color = p.Value
	}
	if ve.GetProperty(ical.ComponentPropertyRrule) != nil {
		return f, "recurring events are not supported"
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return f, "missing DTSTART"
	}
	start, allDay, err := propertyDate(startProp)
	if err != nil {
		return f, err.Error()
	}

	end := start
	if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
		d, _, err := propertyDate(endProp)
		if err != nil {
			return f, err.Error()
		}
		end = d
		if allDay && end.After(start) {
			end = dateutil.AddDays(end, -1)
		}
	}

	f.StartDate = dateutil.FormatForStorage(start)
	f.EndDate = dateutil.FormatForStorage(end)
	return f, ""
}

// propertyDate reads the calendar date of a DTSTART/DTEND value. Date-times
// keep the date as written.
func propertyDate(p *ical.IANAProperty) (time.Time, bool, error) {
	v := strings.TrimSpace(p.Value)
	if len(v) < 8 {
		return time.Time{}, false, fmt.Errorf("invalid date %q", p.Value)
	}
	d, err := time.Parse("20060102", v[:8])
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q", p.Value)
	}
	allDay := !strings.Contains(v, "T")
	if vals, ok := p.ICalParameters["VALUE"]; ok && len(vals) > 0 && strings.EqualFold(vals[0], "DATE") {
		allDay = true
	}
	return dateutil.FromTime(d), allDay, nil
}
