// Package idutil generates event identifiers.
package idutil

import "time"

// Generator hands out time-derived integer IDs (milliseconds since the Unix
// epoch). IDs are strictly increasing for the lifetime of a Generator, so an
// ID is never handed out twice even when two are requested within the same
// millisecond or the clock steps backwards.
type Generator struct {
	last int64
	now  func() time.Time
}

// NewGenerator creates a Generator using the wall clock.
func NewGenerator() *Generator {
	return NewGeneratorWithClock(time.Now)
}

// NewGeneratorWithClock creates a Generator using the given clock.
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns a new ID.
func (g *Generator) Next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe records an ID that is already in use so that Next never returns it
// or anything below it.
func (g *Generator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}
