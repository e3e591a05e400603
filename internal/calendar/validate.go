package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/event"
)

// Validation rules, in the order they are checked.
const (
	RuleName        = "name"
	RuleStartDate   = "start-date"
	RuleEndDate     = "end-date"
	RuleEndBefore   = "end-before-start"
	RuleBeforeBirth = "start-before-birthday"
)

// ValidationError reports the first rule a candidate event violates.
type ValidationError struct {
	Rule    string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Form holds the raw values of an event being created or edited. A zero ID
// means a new event.
type Form struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Color     string `json:"color"`
}

// ValidateNewEvent checks f against anchor and returns the event to store.
// Rules are checked in order: name, start date, end date, end before start,
// start before anchor. Only the first violation is reported. A new event
// gets its id from nextID; an edited one keeps its own. An empty color
// becomes DefaultColor.
func ValidateNewEvent(f Form, anchor time.Time, nextID func() int64) (event.Event, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return event.Event{}, &ValidationError{Rule: RuleName, Message: "event name is required"}
	}

	start, err := dateutil.Normalize(f.StartDate)
	if err != nil {
		return event.Event{}, &ValidationError{
			Rule:    RuleStartDate,
			Message: fmt.Sprintf("start date %q is not a valid date", f.StartDate),
			Err:     err,
		}
	}
	end, err := dateutil.Normalize(f.EndDate)
	if err != nil {
		return event.Event{}, &ValidationError{
			Rule:    RuleEndDate,
			Message: fmt.Sprintf("end date %q is not a valid date", f.EndDate),
			Err:     err,
		}
	}

	if end.Before(start) {
		return event.Event{}, &ValidationError{
			Rule: RuleEndBefore,
			Message: fmt.Sprintf("end date %s is before start date %s",
				dateutil.FormatForDisplay(end), dateutil.FormatForDisplay(start)),
		}
	}
	if start.Before(dateutil.FromTime(anchor)) {
		return event.Event{}, &ValidationError{
			Rule: RuleBeforeBirth,
			Message: fmt.Sprintf("start date %s is before your birthday %s",
				dateutil.FormatForDisplay(start), dateutil.FormatForDisplay(anchor)),
		}
	}

	id := f.ID
	if id == 0 {
		id = nextID()
	}
	color := strings.TrimSpace(f.Color)
	if color == "" {
		color = DefaultColor
	}

	return event.Event{
		ID:        id,
		Name:      name,
		StartDate: dateutil.FormatForStorage(start),
		EndDate:   dateutil.FormatForStorage(end),
		Color:     color,
	}, nil
}
