// Package event holds life events and the store that owns them.
package event

import (
	"time"

	"github.com/wiverson/life-calendar/internal/dateutil"
)

// Event is a named, colored date range on the life calendar.
// StartDate and EndDate are calendar dates in YYYY-MM-DD form.
type Event struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate" yaml:"endDate"`
	Color     string `json:"color" yaml:"color"`
}

// Range returns the normalized start and end dates. It fails with
// dateutil.ErrInvalidDate when either stored date does not parse.
func (e Event) Range() (start, end time.Time, err error) {
	start, err = dateutil.Normalize(e.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = dateutil.Normalize(e.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// key is the composite identity used to deduplicate persisted events.
type key struct {
	name, start, end string
}

func (e Event) key() key {
	return key{name: e.Name, start: e.StartDate, end: e.EndDate}
}
