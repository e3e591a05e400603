package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utc(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildWeeksDefaultCount(t *testing.T) {
	assert.Len(t, BuildWeeks(utc(2000, 1, 1), -1), DefaultWeeks)
	assert.Empty(t, BuildWeeks(utc(2000, 1, 1), 0))
	assert.Nil(t, BuildMonthSpans(BuildWeeks(utc(2000, 1, 1), 0)))
}

func TestBuildWeeksCoverage(t *testing.T) {
	anchor := utc(2000, 1, 1)
	weeks := BuildWeeks(anchor, 52)
	require.Len(t, weeks, 52)

	for i, w := range weeks {
		assert.Equal(t, i, w.Index)
		assert.Equal(t, anchor.AddDate(0, 0, 7*i), w.Start)
		assert.Equal(t, w.Start.AddDate(0, 0, 6), w.End)
		if i > 0 {
			assert.Equal(t, weeks[i-1].End.AddDate(0, 0, 1), w.Start, "weeks are contiguous")
		}
	}
	assert.Equal(t, utc(2000, 12, 29), weeks[51].End)
}

func TestBuildWeeksIgnoresTimeOfDay(t *testing.T) {
	weeks := BuildWeeks(time.Date(2000, 1, 1, 23, 30, 0, 0, time.UTC), 1)
	assert.Equal(t, utc(2000, 1, 1), weeks[0].Start)
}

func TestWeekContains(t *testing.T) {
	w := BuildWeeks(utc(2000, 1, 1), 1)[0]
	assert.True(t, w.Contains(utc(2000, 1, 1)))
	assert.True(t, w.Contains(utc(2000, 1, 7)))
	assert.False(t, w.Contains(utc(2000, 1, 8)))
	assert.False(t, w.Contains(utc(1999, 12, 31)))
}
