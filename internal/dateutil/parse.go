package dateutil

import (
	"strings"
	"time"
)

// ParseDate parses a date expression relative to now.
// Supports everything Normalize accepts plus "today", "tomorrow",
// "yesterday", weekday names ("monday", "next friday", "on monday"),
// "Jan 2", "Jan 2 2006", "January 2 2006", "2 Jan 2006" and "2 January".
// Expressions without a year use now's year.
func ParseDate(s string, now time.Time) (time.Time, error) {
	if d, err := Normalize(s); err == nil {
		return d, nil
	}

	expr := strings.TrimSpace(strings.ToLower(s))
	expr = strings.TrimSpace(strings.TrimPrefix(expr, "on "))

	today := FromTime(now)
	switch expr {
	case "today":
		return today, nil
	case "tomorrow":
		return AddDays(today, 1), nil
	case "yesterday":
		return AddDays(today, -1), nil
	}

	if wd, ok := weekdays[strings.TrimPrefix(expr, "next ")]; ok {
		return nextWeekday(today, wd), nil
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, expr)
		if err != nil {
			continue
		}
		year := t.Year()
		if !strings.Contains(layout, "2006") {
			year = now.Year()
		}
		if d, ok := Date(year, t.Month(), t.Day()); ok {
			return d, nil
		}
	}

	return time.Time{}, invalid(s)
}

// Month and weekday names in values are matched case-insensitively by time.Parse.
var layouts = []string{
	"Jan 2",
	"Jan 2 2006",
	"Jan 2, 2006",
	"January 2",
	"January 2 2006",
	"January 2, 2006",
	"2 Jan",
	"2 Jan 2006",
	"2 January",
	"2 January 2006",
	"2006/01/02",
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// nextWeekday returns the next occurrence of wd after today.
// If today is that weekday, it returns the following week.
func nextWeekday(today time.Time, wd time.Weekday) time.Time {
	ahead := int(wd) - int(today.Weekday())
	if ahead <= 0 {
		ahead += 7
	}
	return AddDays(today, ahead)
}
