package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/export"
	"github.com/wiverson/life-calendar/internal/ics"
)

var eventShowCmd = LeafCommand{
	Use:   "show [ID]",
	Short: "Show the details of an event",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kit := NewPromptKit(cmd.InOrStdin(), cmd.OutOrStdout())

		return withEnv(cmd, func(env *appEnv) error {
			return runEventShow(cmd, env.model, args, kit.Select, time.Now)
		})
	},
}.Build()

func runEventShow(cmd *cobra.Command, model *calendar.Model, args []string, sel SelectFunc, nowFn func() time.Time) error {
	e, err := resolveEvent(model, args, sel, "Which event do you want to see?")
	if err != nil {
		return err
	}

	rm, err := model.Render()
	if err != nil {
		return err
	}
	var summary export.EventSummary
	for _, s := range export.BuildSummary(rm, model.Events(), nowFn()).Events {
		if s.Event.ID == e.ID {
			summary = s
		}
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s %s\n\n", Swatch(e.Color, glyphEvent), Primary(e.Name))
	_, _ = fmt.Fprintf(out, "  %-8s %d\n", "ID:", e.ID)
	if summary.Valid {
		_, _ = fmt.Fprintf(out, "  %-8s %s\n", "Start:", dateutil.FormatForDisplay(summary.Start))
		_, _ = fmt.Fprintf(out, "  %-8s %s\n", "End:", dateutil.FormatForDisplay(summary.End))
		_, _ = fmt.Fprintf(out, "  %-8s %d\n", "Age:", summary.StartAge)
	} else {
		_, _ = fmt.Fprintf(out, "  %-8s %s → %s %s\n", "Dates:", e.StartDate, e.EndDate, Warning("(unreadable)"))
	}
	_, _ = fmt.Fprintf(out, "  %-8s %d\n", "Weeks:", summary.Weeks)
	_, _ = fmt.Fprintf(out, "  %-8s %s\n", "Color:", e.Color)
	_, _ = fmt.Fprintf(out, "  %-8s %s\n", "UID:", Silent(ics.UID(e)))
	return nil
}
