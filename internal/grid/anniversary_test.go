package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnniversaries(t *testing.T) {
	dates, err := Anniversaries(utc(1990, 6, 15), 3)
	require.NoError(t, err)
	require.Len(t, dates, 4)
	assert.Equal(t, utc(1990, 6, 15), dates[0])
	assert.Equal(t, utc(1993, 6, 15), dates[3])
}

func TestAnniversariesLeapDay(t *testing.T) {
	dates, err := Anniversaries(utc(2000, 2, 29), 4)
	require.NoError(t, err)
	require.Len(t, dates, 5)
	assert.Equal(t, utc(2000, 2, 29), dates[0])
	assert.Equal(t, utc(2001, 2, 28), dates[1])
	assert.Equal(t, utc(2003, 2, 28), dates[3])
	assert.Equal(t, utc(2004, 2, 29), dates[4])
}

func TestAnniversaryWeeks(t *testing.T) {
	weeks := BuildWeeks(utc(2000, 1, 1), 110)
	marks, err := AnniversaryWeeks(utc(2000, 1, 1), weeks)
	require.NoError(t, err)

	assert.Equal(t, map[int]int{0: 0, 52: 1, 104: 2}, marks)
}

func TestAges(t *testing.T) {
	weeks := BuildWeeks(utc(2000, 1, 1), 110)
	ages, err := Ages(utc(2000, 1, 1), weeks)
	require.NoError(t, err)

	assert.Equal(t, 0, ages[0])
	assert.Equal(t, 0, ages[51])
	assert.Equal(t, 1, ages[52])
	assert.Equal(t, 2, ages[109])
}
