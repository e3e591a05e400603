package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/export"
	"github.com/wiverson/life-calendar/internal/stringutil"
)

const (
	idColWidth    = 14
	nameColWidth  = 28
	dateColWidth  = 10
	weeksColWidth = 5
)

var eventListCmd = LeafCommand{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all events",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *appEnv) error {
			return runEventList(cmd, env.model, time.Now)
		})
	},
}.Build()

func runEventList(cmd *cobra.Command, model *calendar.Model, nowFn func() time.Time) error {
	out := cmd.OutOrStdout()

	events := model.Events()
	if len(events) == 0 {
		_, _ = fmt.Fprintln(out, "No events yet. Add one with 'lifecal event add'.")
		return nil
	}

	// Week counts need the grid; without a birthday they are left blank.
	weeks := map[int64]int{}
	if rm, err := model.Render(); err == nil {
		for _, s := range export.BuildSummary(rm, events, nowFn()).Events {
			weeks[s.Event.ID] = s.Weeks
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.Join([]string{
		padRight("ID", idColWidth),
		padRight("Name", nameColWidth),
		padRight("Start", dateColWidth),
		padRight("End", dateColWidth),
		padRight("Weeks", weeksColWidth),
		"Color",
	}, "  ")))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", idColWidth+nameColWidth+2*dateColWidth+weeksColWidth+len("Color")+5*2))
	b.WriteString("\n")

	for _, e := range events {
		w := ""
		if n, ok := weeks[e.ID]; ok {
			w = fmt.Sprint(n)
		}
		b.WriteString(strings.Join([]string{
			padRight(fmt.Sprint(e.ID), idColWidth),
			padRight(stringutil.Truncate(e.Name, nameColWidth), nameColWidth),
			padRight(e.StartDate, dateColWidth),
			padRight(e.EndDate, dateColWidth),
			padRight(w, weeksColWidth),
			Swatch(e.Color, glyphEvent) + " " + e.Color,
		}, "  "))
		b.WriteString("\n")
	}

	_, err := fmt.Fprint(out, b.String())
	return err
}
