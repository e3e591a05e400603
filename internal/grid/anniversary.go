package grid

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/wiverson/life-calendar/internal/dateutil"
)

// Anniversaries returns the birthday anniversaries of anchor for ages
// 0 through years. A Feb 29 anchor falls on the last day of February in
// common years.
func Anniversaries(anchor time.Time, years int) ([]time.Time, error) {
	if years < 0 {
		return nil, nil
	}
	anchor = dateutil.FromTime(anchor)

	opts := rrule.ROption{
		Freq:    rrule.YEARLY,
		Dtstart: anchor,
		Count:   years + 1,
	}
	if anchor.Month() == time.February && anchor.Day() == 29 {
		opts.Bymonth = []int{2}
		opts.Bymonthday = []int{-1}
	}

	r, err := rrule.NewRRule(opts)
	if err != nil {
		return nil, fmt.Errorf("anniversary rule: %w", err)
	}

	dates := r.All()
	for i := range dates {
		dates[i] = dateutil.FromTime(dates[i])
	}
	return dates, nil
}

// AnniversaryWeeks maps the index of every week containing a birthday
// anniversary to the age reached in that week.
func AnniversaryWeeks(anchor time.Time, weeks []WeekBucket) (map[int]int, error) {
	dates, err := anniversariesThrough(anchor, weeks)
	if err != nil {
		return nil, err
	}
	out := make(map[int]int)
	for _, w := range weeks {
		for age, d := range dates {
			if w.Contains(d) {
				out[w.Index] = age
			}
		}
	}
	return out, nil
}

// Ages returns the age at every week. A week containing an anniversary
// already counts the new age.
func Ages(anchor time.Time, weeks []WeekBucket) ([]int, error) {
	dates, err := anniversariesThrough(anchor, weeks)
	if err != nil {
		return nil, err
	}
	ages := make([]int, len(weeks))
	next := 0
	for i, w := range weeks {
		for next < len(dates) && !dates[next].After(w.End) {
			next++
		}
		if next > 0 {
			ages[i] = next - 1
		}
	}
	return ages, nil
}

func anniversariesThrough(anchor time.Time, weeks []WeekBucket) ([]time.Time, error) {
	if len(weeks) == 0 {
		return nil, nil
	}
	last := weeks[len(weeks)-1].End
	return Anniversaries(anchor, last.Year()-dateutil.FromTime(anchor).Year())
}
