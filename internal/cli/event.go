package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/event"
)

var eventCmd = GroupCommand{
	Use:     "event",
	Aliases: []string{"events"},
	Short:   "Manage life events",
	Subcommands: []*cobra.Command{
		eventAddCmd,
		eventEditCmd,
		eventRemoveCmd,
		eventListCmd,
		eventShowCmd,
	},
}.Build()

// eventFlagDefs are shared by add and edit.
var eventFlagDefs = []StringFlag{
	{Name: "name", Shorthand: "n", Usage: "event name"},
	{Name: "start", Shorthand: "s", Usage: "first day (YYYY-MM-DD or a date like \"Jan 10 2000\")"},
	{Name: "end", Shorthand: "e", Usage: "last day, inclusive (defaults to the start date)"},
	{Name: "color", Shorthand: "c", Usage: "hex color such as #ff8800"},
}

// formFromFlags reads the shared event flags.
func formFromFlags(cmd *cobra.Command) calendar.Form {
	name, _ := cmd.Flags().GetString("name")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	color, _ := cmd.Flags().GetString("color")
	return calendar.Form{Name: name, StartDate: start, EndDate: end, Color: color}
}

// describeError adds the violated rule to validation errors.
func describeError(err error) error {
	var ve *calendar.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("%w (rule: %s)", err, ve.Rule)
	}
	return err
}

// resolveEvent finds the event named by args[0], or asks the user to pick
// one when no id was given.
func resolveEvent(model *calendar.Model, args []string, sel SelectFunc, title string) (event.Event, error) {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return event.Event{}, fmt.Errorf("invalid event id %q", args[0])
		}
		e, ok := model.Event(id)
		if !ok {
			return event.Event{}, fmt.Errorf("%w: %d", calendar.ErrEventNotFound, id)
		}
		return e, nil
	}

	events := model.Events()
	if len(events) == 0 {
		return event.Event{}, errors.New("no events yet; add one with 'lifecal event add'")
	}
	options := make([]string, len(events))
	for i, e := range events {
		options[i] = fmt.Sprintf("%s (%s → %s)", e.Name, e.StartDate, e.EndDate)
	}
	idx, err := sel(title, options)
	if err != nil {
		return event.Event{}, err
	}
	return events[idx], nil
}

func formatEventLine(e event.Event) string {
	return fmt.Sprintf("%s %s %s", Swatch(e.Color, glyphEvent), Primary(e.Name), Silent(fmt.Sprintf("(%s → %s, id %d)", e.StartDate, e.EndDate, e.ID)))
}
