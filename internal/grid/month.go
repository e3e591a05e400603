package grid

import "time"

// MonthSpan is a run of consecutive weeks whose start dates share a
// calendar month.
type MonthSpan struct {
	Label string     `json:"label"`
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Weeks int        `json:"weeks"`
}

// Width returns the share of total weeks covered by the span, for
// proportional header layouts.
func (m MonthSpan) Width(total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(m.Weeks) / float64(total)
}

// BuildMonthSpans groups weeks by the (year, month) of their start date.
// Each span is labelled with its own month. The weeks of all spans add up to
// len(weeks).
func BuildMonthSpans(weeks []WeekBucket) []MonthSpan {
	if len(weeks) == 0 {
		return nil
	}

	var spans []MonthSpan
	cur := newSpan(weeks[0].Start)
	for _, w := range weeks {
		if w.Start.Year() != cur.Year || w.Start.Month() != cur.Month {
			spans = append(spans, cur)
			cur = newSpan(w.Start)
		}
		cur.Weeks++
	}
	return append(spans, cur)
}

func newSpan(d time.Time) MonthSpan {
	return MonthSpan{
		Label: d.Month().String()[:3],
		Year:  d.Year(),
		Month: d.Month(),
	}
}
