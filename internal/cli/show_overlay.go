package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/event"
)

// overlayResult is sent when an overlay completes.
type overlayResult struct {
	action string // "cancel", "save", "delete"
	err    error
}

func overlayResultMsg(action string, err error) tea.Cmd {
	return func() tea.Msg {
		return overlayResult{action: action, err: err}
	}
}

var (
	overlayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			Width(50)
	overlayTitleStyle  = lipgloss.NewStyle().Bold(true)
	overlayActiveStyle = lipgloss.NewStyle().Reverse(true)
	overlayMutedStyle  = lipgloss.NewStyle().Faint(true)
)

// --- Event Form Overlay ---
// Adds a new event or edits the selected one.

type formField int

const (
	formFieldName formField = iota
	formFieldStart
	formFieldEnd
	formFieldColor
	formFieldConfirm
)

type eventFormOverlay struct {
	id    int64
	name  string
	start string
	end   string
	color string
	field formField
	today time.Time
	err   string
}

func newEventFormOverlay(f calendar.Form, today time.Time) *eventFormOverlay {
	return &eventFormOverlay{
		id:    f.ID,
		name:  f.Name,
		start: f.StartDate,
		end:   f.EndDate,
		color: f.Color,
		today: today,
	}
}

func (o *eventFormOverlay) Init() tea.Cmd { return nil }

func (o *eventFormOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return o, overlayResultMsg("cancel", nil)
		case "tab", "down":
			if o.field < formFieldConfirm {
				o.field++
			}
		case "shift+tab", "up":
			if o.field > formFieldName {
				o.field--
			}
		case "enter":
			if o.field == formFieldConfirm {
				o.err = ""
				return o, overlayResultMsg("save", nil)
			}
			o.field++
		case "backspace":
			o.deleteChar()
		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				o.insertChar(string(msg.Runes))
			}
		}
	}
	return o, nil
}

func (o *eventFormOverlay) value() *string {
	switch o.field {
	case formFieldName:
		return &o.name
	case formFieldStart:
		return &o.start
	case formFieldEnd:
		return &o.end
	case formFieldColor:
		return &o.color
	}
	return nil
}

func (o *eventFormOverlay) insertChar(s string) {
	if v := o.value(); v != nil {
		*v += s
	}
}

func (o *eventFormOverlay) deleteChar() {
	v := o.value()
	if v == nil || *v == "" {
		return
	}
	r := []rune(*v)
	*v = string(r[:len(r)-1])
}

// form returns the values as a calendar.Form, resolving natural date
// expressions relative to today.
func (o *eventFormOverlay) form() calendar.Form {
	return calendar.Form{
		ID:        o.id,
		Name:      o.name,
		StartDate: resolveDate(o.start, o.today),
		EndDate:   resolveDate(o.end, o.today),
		Color:     strings.TrimSpace(o.color),
	}
}

func (o *eventFormOverlay) View() string {
	title := "Add Event"
	if o.id != 0 {
		title = "Edit Event"
	}

	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render(title))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		value string
		field formField
	}{
		{"Name", o.name, formFieldName},
		{"Start", o.start, formFieldStart},
		{"End", o.end, formFieldEnd},
		{"Color", o.color, formFieldColor},
	}

	for _, f := range fields {
		line := fmt.Sprintf("  %-6s %s", f.label+":", f.value)
		if o.field == f.field {
			b.WriteString(overlayActiveStyle.Render("> " + line[2:]))
		} else {
			b.WriteString(line)
		}
		if f.field == formFieldColor && o.color != "" {
			b.WriteString(" " + Swatch(o.color, glyphEvent))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if o.field == formFieldConfirm {
		b.WriteString(overlayActiveStyle.Render("> [Save]"))
	} else {
		b.WriteString("  [Save]")
	}
	b.WriteString("\n")

	if o.err != "" {
		b.WriteString("\n")
		b.WriteString(Error(o.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(overlayMutedStyle.Render("tab/↑/↓ navigate  |  enter confirm  |  esc cancel"))

	return overlayBoxStyle.Render(b.String())
}

// --- Delete Overlay ---
// Confirmation before an event is removed.

type deleteOverlay struct {
	event event.Event
}

func newDeleteOverlay(e event.Event) *deleteOverlay {
	return &deleteOverlay{event: e}
}

func (o *deleteOverlay) Init() tea.Cmd { return nil }

func (o *deleteOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "enter":
			return o, overlayResultMsg("delete", nil)
		case "n", "esc", "q":
			return o, overlayResultMsg("cancel", nil)
		}
	}
	return o, nil
}

func (o *deleteOverlay) View() string {
	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("Delete Event"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Swatch(o.event.Color, glyphEvent), o.event.Name))
	b.WriteString(Silent(o.event.StartDate + " → " + o.event.EndDate))
	b.WriteString("\n\n")
	b.WriteString(overlayMutedStyle.Render("y/enter delete  |  n/esc cancel"))
	return overlayBoxStyle.Render(b.String())
}
