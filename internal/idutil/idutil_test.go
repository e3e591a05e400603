package idutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNextUsesClockMillis(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g := NewGeneratorWithClock(fixedClock(now))
	assert.Equal(t, now.UnixMilli(), g.Next())
}

func TestNextIsStrictlyIncreasing(t *testing.T) {
	g := NewGeneratorWithClock(fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))

	first := g.Next()
	second := g.Next()
	third := g.Next()

	assert.Equal(t, first+1, second)
	assert.Equal(t, second+1, third)
}

func TestNextSurvivesClockGoingBackwards(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g := NewGeneratorWithClock(func() time.Time { return now })

	first := g.Next()
	now = now.Add(-time.Hour)
	assert.Greater(t, g.Next(), first)
}

func TestObserveSkipsUsedIDs(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	g := NewGeneratorWithClock(fixedClock(now))

	used := now.UnixMilli() + 500
	g.Observe(used)
	g.Observe(3)

	assert.Equal(t, used+1, g.Next())
}

func TestNewGeneratorUsesWallClock(t *testing.T) {
	before := time.Now().UnixMilli()
	id := NewGenerator().Next()
	assert.GreaterOrEqual(t, id, before)
}
