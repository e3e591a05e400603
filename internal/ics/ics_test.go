package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/event"
)

var stamp = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, []event.Event{
		{ID: 1, Name: "Trip to Japan", StartDate: "2000-01-10", EndDate: "2000-01-20", Color: "#ff0000"},
		{ID: 2, Name: "Broken", StartDate: "someday", EndDate: "2000-01-20"},
	}, stamp)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, ProductID)
	assert.Contains(t, out, "UID:1-trip-to-japan@lifecal")
	assert.Contains(t, out, "SUMMARY:Trip to Japan")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20000110")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20000121")
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
}

func TestExportParseRoundTrip(t *testing.T) {
	events := []event.Event{
		{ID: 1, Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20", Color: "#ff0000"},
		{ID: 2, Name: "Birthday party", StartDate: "2001-01-01", EndDate: "2001-01-01"},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, events, stamp))

	forms, skipped, err := Parse(&buf)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, forms, 2)

	assert.Equal(t, calendar.Form{Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20", Color: "#ff0000"}, forms[0])
	assert.Equal(t, "2001-01-01", forms[1].StartDate)
	assert.Equal(t, "2001-01-01", forms[1].EndDate)
}

func TestParseSkipsRecurringAndMissingStart(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:a",
		"SUMMARY:Weekly",
		"DTSTART;VALUE=DATE:20200101",
		"RRULE:FREQ=WEEKLY",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:b",
		"SUMMARY:No start",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:c",
		"SUMMARY:Meeting",
		"DTSTART:20200305T090000Z",
		"DTEND:20200305T100000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	forms, skipped, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	require.Len(t, forms, 1)
	assert.Equal(t, "Meeting", forms[0].Name)
	assert.Equal(t, "2020-03-05", forms[0].StartDate)
	assert.Equal(t, "2020-03-05", forms[0].EndDate)

	require.Len(t, skipped, 2)
	assert.Equal(t, "Weekly", skipped[0].Summary)
	assert.Equal(t, "No start", skipped[1].Summary)
}

func TestParseEmpty(t *testing.T) {
	_, _, err := Parse(strings.NewReader("  "))
	assert.Error(t, err)
}

func TestUIDFallsBackForSymbolNames(t *testing.T) {
	assert.Equal(t, "7-event@lifecal", UID(event.Event{ID: 7, Name: "!!!"}))
}
