package calendar

import (
	"time"

	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/event"
	"github.com/wiverson/life-calendar/internal/grid"
	"github.com/wiverson/life-calendar/internal/logger"
)

// Grid dimensions used when Options leaves them unset.
const (
	DefaultWeeksPerRow = grid.DefaultWeeks
	DefaultRows        = 100
)

// Largest grid BuildRenderModel lays out; larger options are clamped.
const (
	MaxWeeksPerRow = 104
	MaxRows        = 150
)

// WeekCell is one cell of the rendered grid.
type WeekCell struct {
	Bucket grid.WeekBucket `json:"bucket"`
	// Event is the first overlapping event in collection order, or nil.
	Event *event.Event `json:"event,omitempty"`
	// More counts the other events overlapping the week.
	More        int    `json:"more,omitempty"`
	Tooltip     string `json:"tooltip"`
	Age         int    `json:"age"`
	Anniversary bool   `json:"anniversary,omitempty"`
}

// RenderModel is everything a renderer needs to draw the calendar.
type RenderModel struct {
	Anchor      time.Time        `json:"anchor"`
	MonthSpans  []grid.MonthSpan `json:"monthSpans"`
	Weeks       []WeekCell       `json:"weeks"`
	WeeksPerRow int              `json:"weeksPerRow"`
	Rows        int              `json:"rows"`
}

// Row returns the cells of row r.
func (m RenderModel) Row(r int) []WeekCell {
	from := r * m.WeeksPerRow
	if r < 0 || from >= len(m.Weeks) {
		return nil
	}
	to := min(from+m.WeeksPerRow, len(m.Weeks))
	return m.Weeks[from:to]
}

// GridOptions sizes the grid.
type GridOptions struct {
	WeeksPerRow int
	Rows        int
}

func (o GridOptions) normalize() GridOptions {
	if o.WeeksPerRow <= 0 {
		o.WeeksPerRow = DefaultWeeksPerRow
	}
	if o.Rows <= 0 {
		o.Rows = DefaultRows
	}
	o.WeeksPerRow = min(o.WeeksPerRow, MaxWeeksPerRow)
	o.Rows = min(o.Rows, MaxRows)
	return o
}

// BuildRenderModel lays out the grid for anchor and resolves the first
// overlapping event of every week. Month spans cover the first row.
func BuildRenderModel(anchor time.Time, events []event.Event, opts GridOptions) RenderModel {
	opts = opts.normalize()
	anchor = dateutil.FromTime(anchor)

	weeks := grid.BuildWeeks(anchor, opts.WeeksPerRow*opts.Rows)

	ages, err := grid.Ages(anchor, weeks)
	if err != nil {
		logger.Warn("computing ages", "err", err)
		ages = make([]int, len(weeks))
	}
	marks, err := grid.AnniversaryWeeks(anchor, weeks)
	if err != nil {
		logger.Warn("computing anniversaries", "err", err)
	}

	spans := grid.ParseSpans(events)
	cells := make([]WeekCell, len(weeks))
	for i, w := range weeks {
		overlapping := grid.SpansForWeek(w, spans)
		cell := WeekCell{
			Bucket:  w,
			Tooltip: dateutil.FormatForDisplay(w.Start) + " - " + dateutil.FormatForDisplay(w.End),
			Age:     ages[i],
		}
		if _, ok := marks[w.Index]; ok {
			cell.Anniversary = true
		}
		if len(overlapping) > 0 {
			e := overlapping[0]
			cell.Event = &e
			cell.More = len(overlapping) - 1
			cell.Tooltip += "\n" + e.Name
		}
		cells[i] = cell
	}

	return RenderModel{
		Anchor:      anchor,
		MonthSpans:  grid.BuildMonthSpans(weeks[:opts.WeeksPerRow]),
		Weeks:       cells,
		WeeksPerRow: opts.WeeksPerRow,
		Rows:        opts.Rows,
	}
}
