package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthSpansSumsToWeeks(t *testing.T) {
	for _, anchor := range []time.Time{utc(2000, 1, 1), utc(1987, 6, 30), utc(2004, 2, 29)} {
		weeks := BuildWeeks(anchor, 52)
		total := 0
		for _, s := range BuildMonthSpans(weeks) {
			assert.Positive(t, s.Weeks)
			total += s.Weeks
		}
		assert.Equal(t, len(weeks), total, anchor.String())
	}
}

func TestBuildMonthSpansLabels(t *testing.T) {
	spans := BuildMonthSpans(BuildWeeks(utc(2000, 1, 1), 52))
	require.Len(t, spans, 12)

	assert.Equal(t, MonthSpan{Label: "Jan", Year: 2000, Month: time.January, Weeks: 5}, spans[0])
	assert.Equal(t, MonthSpan{Label: "Feb", Year: 2000, Month: time.February, Weeks: 4}, spans[1])
	assert.Equal(t, "Dec", spans[11].Label)
	assert.Equal(t, 4, spans[11].Weeks)
}

func TestBuildMonthSpansYearBoundary(t *testing.T) {
	spans := BuildMonthSpans(BuildWeeks(utc(2000, 12, 20), 3))
	require.Len(t, spans, 2)
	assert.Equal(t, 2000, spans[0].Year)
	assert.Equal(t, 2, spans[0].Weeks)
	assert.Equal(t, "Jan", spans[1].Label)
	assert.Equal(t, 2001, spans[1].Year)
	assert.Equal(t, 1, spans[1].Weeks)
}

func TestBuildMonthSpansEmpty(t *testing.T) {
	assert.Nil(t, BuildMonthSpans(nil))
}

func TestMonthSpanWidth(t *testing.T) {
	s := MonthSpan{Weeks: 13}
	assert.InDelta(t, 0.25, s.Width(52), 1e-9)
	assert.Zero(t, s.Width(0))
}
