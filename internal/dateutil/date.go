// Package dateutil canonicalizes calendar dates.
//
// Every date handled by lifecal is a calendar-date key: a time.Time at
// midnight UTC. Inputs are parsed component by component and rebuilt at
// UTC midnight, so no local-zone arithmetic can shift a date by a day.
package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// StorageLayout is the persisted event date format.
	StorageLayout = "2006-01-02"
	// DisplayLayout is the human-readable date format used in tooltips.
	DisplayLayout = "Jan 2, 2006"
	// ISOLayout is the persisted birthday format (a UTC midnight date-time).
	ISOLayout = "2006-01-02T15:04:05.000Z"
)

// ErrInvalidDate is returned when an input does not denote a valid calendar date.
var ErrInvalidDate = errors.New("invalid date")

// isoDate matches YYYY-MM-DD with an optional time-of-day and zone suffix.
var isoDate = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})(?:[T ](\d{2}):(\d{2})(?::(\d{2})(?:\.\d+)?)?(Z|[+-]\d{2}:?\d{2})?)?$`,
)

// Normalize parses input into a calendar-date key. The date components are
// taken as written; any time-of-day or zone offset is validated and dropped.
func Normalize(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	m := isoDate.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, invalid(input)
	}

	if m[4] != "" {
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])
		second := 0
		if m[6] != "" {
			second, _ = strconv.Atoi(m[6])
		}
		if hour > 23 || minute > 59 || second > 59 {
			return time.Time{}, invalid(input)
		}
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	d, ok := Date(year, time.Month(month), day)
	if !ok {
		return time.Time{}, invalid(input)
	}
	return d, nil
}

// Date builds a calendar-date key, reporting false for impossible dates
// such as February 30.
func Date(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// FromTime returns the calendar-date key of t's own wall-clock date.
func FromTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar date by n days.
func AddDays(d time.Time, n int) time.Time {
	return FromTime(d).AddDate(0, 0, n)
}

// FormatForStorage formats d as YYYY-MM-DD.
func FormatForStorage(d time.Time) string {
	return FromTime(d).Format(StorageLayout)
}

// FormatForDisplay formats d as "Jan 2, 2006".
func FormatForDisplay(d time.Time) string {
	return FromTime(d).Format(DisplayLayout)
}

// FormatISO formats d as a UTC midnight ISO-8601 date-time.
func FormatISO(d time.Time) string {
	return FromTime(d).Format(ISOLayout)
}

// YearsBetween returns the number of whole years from anchor to d.
func YearsBetween(anchor, d time.Time) int {
	anchor, d = FromTime(anchor), FromTime(d)
	years := d.Year() - anchor.Year()
	if d.Month() < anchor.Month() || (d.Month() == anchor.Month() && d.Day() < anchor.Day()) {
		years--
	}
	return years
}

func invalid(input string) error {
	return fmt.Errorf("%w %q", ErrInvalidDate, input)
}
