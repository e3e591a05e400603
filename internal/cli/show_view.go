package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/event"
	"github.com/wiverson/life-calendar/internal/grid"
	"github.com/wiverson/life-calendar/internal/stringutil"
)

const ageColWidth = 4

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
	livedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	aheadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4E4E4E"))
	todayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Bold(true)
)

const (
	glyphLived   = "■"
	glyphAhead   = "□"
	glyphToday   = "◆"
	glyphEvent   = "■"
	glyphCrowded = "▣"
)

// cellGlyph returns the character and style used to draw a week.
func cellGlyph(c calendar.WeekCell, today time.Time) (string, lipgloss.Style) {
	switch {
	case c.Event != nil:
		glyph := glyphEvent
		if c.More > 0 {
			glyph = glyphCrowded
		}
		return glyph, lipgloss.NewStyle().Foreground(lipgloss.Color(c.Event.Color))
	case c.Bucket.Contains(today):
		return glyphToday, todayStyle
	case c.Bucket.End.Before(today):
		return glyphLived, livedStyle
	}
	return glyphAhead, aheadStyle
}

// monthHeader lays the month labels over the first row, one column per week.
func monthHeader(spans []grid.MonthSpan) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", ageColWidth))
	for _, s := range spans {
		label := s.Label
		if len(label) > s.Weeks {
			label = label[:s.Weeks]
		}
		b.WriteString(padRight(label, s.Weeks))
	}
	return headerStyle.Render(strings.TrimRight(b.String(), " "))
}

// renderRows draws rows [from, from+count) of the grid. The week at index
// cursor is highlighted; pass -1 for none.
func renderRows(rm calendar.RenderModel, from, count, cursor int, today time.Time) string {
	var b strings.Builder
	for r := from; r < from+count && r < rm.Rows; r++ {
		cells := rm.Row(r)
		if len(cells) == 0 {
			break
		}
		b.WriteString(Silent(fmt.Sprintf("%3d ", cells[0].Age)))
		for _, c := range cells {
			glyph, style := cellGlyph(c, today)
			if c.Bucket.Index == cursor {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(glyph))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderStatic draws the whole calendar followed by a legend.
func renderStatic(rm calendar.RenderModel, events []event.Event, now time.Time) string {
	today := dateutil.FromTime(now)

	var b strings.Builder
	b.WriteString(titleLine(rm, today))
	b.WriteString("\n\n")
	b.WriteString(monthHeader(rm.MonthSpans))
	b.WriteString("\n")
	b.WriteString(renderRows(rm, 0, rm.Rows, -1, today))
	b.WriteString("\n")
	b.WriteString(legend(events))
	return b.String()
}

func titleLine(rm calendar.RenderModel, today time.Time) string {
	return headerStyle.Render(fmt.Sprintf("Born %s", dateutil.FormatForDisplay(rm.Anchor))) +
		Silent(fmt.Sprintf("  ·  %d weeks lived", weeksLived(rm.Anchor, today)))
}

func legend(events []event.Event) string {
	var b strings.Builder
	b.WriteString(livedStyle.Render(glyphLived) + " lived  ")
	b.WriteString(todayStyle.Render(glyphToday) + " this week  ")
	b.WriteString(aheadStyle.Render(glyphAhead) + " ahead  ")
	b.WriteString(glyphCrowded + " several events\n")

	for _, e := range events {
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			Swatch(e.Color, glyphEvent),
			padRight(stringutil.Truncate(e.Name, 30), 30),
			Silent(e.StartDate+" → "+e.EndDate)))
	}
	return b.String()
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
