package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/storage"
)

// showModel is the interactive calendar: a cursor over weeks and overlays
// for adding, editing and deleting events.
type showModel struct {
	model      *calendar.Model
	rm         calendar.RenderModel
	years      int
	today      time.Time
	cursor     int // week index
	scrollY    int // first visible row
	termWidth  int
	termHeight int
	overlay    tea.Model
	footerMsg  string
}

func newShowModel(model *calendar.Model, years int, now time.Time) showModel {
	m := showModel{
		model:      model,
		years:      years,
		today:      dateutil.FromTime(now),
		termWidth:  120,
		termHeight: 40,
	}
	m.refresh()
	m.cursor = m.todayIndex()
	return m.ensureCursorVisible()
}

// refresh rebuilds the render model after a change.
func (m *showModel) refresh() {
	rm, err := renderCalendar(m.model, m.years)
	if err != nil {
		m.footerMsg = err.Error()
		return
	}
	m.rm = rm
}

func (m showModel) todayIndex() int {
	for _, c := range m.rm.Weeks {
		if c.Bucket.Contains(m.today) {
			return c.Bucket.Index
		}
	}
	if len(m.rm.Weeks) > 0 && m.today.After(m.rm.Weeks[len(m.rm.Weeks)-1].Bucket.End) {
		return len(m.rm.Weeks) - 1
	}
	return 0
}

func (m showModel) perRow() int {
	if m.rm.WeeksPerRow <= 0 {
		return 1
	}
	return m.rm.WeeksPerRow
}

func (m showModel) visibleRows() int {
	// title(1) + blank(1) + month header(1) + footer(3)
	available := m.termHeight - 6
	if available < 1 {
		return 1
	}
	if available > m.rm.Rows {
		return m.rm.Rows
	}
	return available
}

func (m showModel) maxScrollY() int {
	return max(m.rm.Rows-m.visibleRows(), 0)
}

func (m showModel) ensureCursorVisible() showModel {
	row := m.cursor / m.perRow()
	if row < m.scrollY {
		m.scrollY = row
	}
	if row >= m.scrollY+m.visibleRows() {
		m.scrollY = row - m.visibleRows() + 1
	}
	m.scrollY = min(max(m.scrollY, 0), m.maxScrollY())
	return m
}

// moveCursor shifts the cursor by delta weeks, clamped to the grid.
func (m showModel) moveCursor(delta int) showModel {
	next := m.cursor + delta
	if next < 0 || next >= len(m.rm.Weeks) {
		return m
	}
	m.cursor = next
	return m.ensureCursorVisible()
}

func (m showModel) selected() (calendar.WeekCell, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rm.Weeks) {
		return calendar.WeekCell{}, false
	}
	return m.rm.Weeks[m.cursor], true
}

func (m showModel) Init() tea.Cmd {
	return nil
}

func (m showModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.overlay != nil {
		return m.updateOverlay(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m = m.ensureCursorVisible()
	case tea.KeyMsg:
		m.footerMsg = ""
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "right", "l":
			m = m.moveCursor(1)
		case "left", "h":
			m = m.moveCursor(-1)
		case "down", "j":
			m = m.moveCursor(m.perRow())
		case "up", "k":
			m = m.moveCursor(-m.perRow())
		case "pgdown":
			m = m.moveCursor(m.perRow() * m.visibleRows())
		case "pgup":
			m = m.moveCursor(-m.perRow() * m.visibleRows())
		case "g":
			m.cursor = m.todayIndex()
			m = m.ensureCursorVisible()
		case "a":
			return m.startAdd()
		case "e", "enter":
			return m.startEdit()
		case "d", "delete":
			return m.startDelete()
		}
	}
	return m, nil
}

func (m showModel) startAdd() (tea.Model, tea.Cmd) {
	c, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.overlay = newEventFormOverlay(calendar.Form{
		StartDate: dateutil.FormatForStorage(c.Bucket.Start),
		EndDate:   dateutil.FormatForStorage(c.Bucket.End),
	}, m.today)
	return m, nil
}

func (m showModel) startEdit() (tea.Model, tea.Cmd) {
	c, ok := m.selected()
	if !ok || c.Event == nil {
		m.footerMsg = "No event in this week. Press a to add one."
		return m, nil
	}
	f, ok := m.model.Form(c.Event.ID)
	if !ok {
		return m, nil
	}
	m.overlay = newEventFormOverlay(f, m.today)
	return m, nil
}

func (m showModel) startDelete() (tea.Model, tea.Cmd) {
	c, ok := m.selected()
	if !ok || c.Event == nil {
		m.footerMsg = "No event in this week."
		return m, nil
	}
	m.overlay = newDeleteOverlay(*c.Event)
	return m, nil
}

// updateOverlay delegates input to the active overlay and handles overlay results.
func (m showModel) updateOverlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(overlayResult); ok {
		return m.handleOverlayResult(result)
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.termWidth = size.Width
		m.termHeight = size.Height
	}

	updated, cmd := m.overlay.Update(msg)
	m.overlay = updated
	return m, cmd
}

func (m showModel) handleOverlayResult(result overlayResult) (tea.Model, tea.Cmd) {
	switch result.action {
	case "save":
		return m.handleSave()
	case "delete":
		return m.handleDelete()
	}
	m.overlay = nil
	return m, nil
}

func (m showModel) handleSave() (tea.Model, tea.Cmd) {
	form, ok := m.overlay.(*eventFormOverlay)
	if !ok {
		m.overlay = nil
		return m, nil
	}

	e, err := m.model.SaveEvent(form.form())
	if err != nil && !errors.Is(err, storage.ErrUnavailable) {
		form.err = err.Error()
		return m, nil
	}

	m.overlay = nil
	m.refresh()
	if err != nil {
		m.footerMsg = Warning("Saved in memory only: " + err.Error())
	} else {
		m.footerMsg = fmt.Sprintf("Saved %q.", e.Name)
	}
	return m, nil
}

func (m showModel) handleDelete() (tea.Model, tea.Cmd) {
	confirm, ok := m.overlay.(*deleteOverlay)
	m.overlay = nil
	if !ok {
		return m, nil
	}

	err := m.model.DeleteEvent(confirm.event.ID)
	m.refresh()
	switch {
	case errors.Is(err, storage.ErrUnavailable):
		m.footerMsg = Warning("Deleted in memory only: " + err.Error())
	case err != nil:
		m.footerMsg = Error(err.Error())
	default:
		m.footerMsg = fmt.Sprintf("Deleted %q.", confirm.event.Name)
	}
	return m, nil
}

func (m showModel) View() string {
	if m.overlay != nil {
		return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, m.overlay.View(),
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	var b strings.Builder
	b.WriteString(titleLine(m.rm, m.today))
	b.WriteString("\n\n")
	b.WriteString(monthHeader(m.rm.MonthSpans))
	b.WriteString("\n")
	b.WriteString(renderRows(m.rm, m.scrollY, m.visibleRows(), m.cursor, m.today))
	b.WriteString(m.footer())
	return b.String()
}

func (m showModel) footer() string {
	var b strings.Builder
	if c, ok := m.selected(); ok {
		tip := strings.ReplaceAll(c.Tooltip, "\n", "  ·  ")
		b.WriteString(fmt.Sprintf("Week %d, age %d  ·  %s", c.Bucket.Index+1, c.Age, tip))
		if c.More > 0 {
			b.WriteString(Silent(fmt.Sprintf("  (+%d more)", c.More)))
		}
	}
	b.WriteString("\n")
	if m.footerMsg != "" {
		b.WriteString(m.footerMsg)
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("←/→/↑/↓ move  |  g today  |  a add  |  e edit  |  d delete  |  q quit"))
	return b.String()
}
