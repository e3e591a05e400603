package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
)

var eventAddCmd = LeafCommand{
	Use:      "add",
	Short:    "Add an event to the calendar",
	Example:  "  lifecal event add --name \"Trip\" --start 2000-01-10 --end 2000-01-20 --color \"#ff8800\"",
	Args:     cobra.NoArgs,
	StrFlags: eventFlagDefs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := formFromFlags(cmd)
		kit := NewPromptKit(cmd.InOrStdin(), cmd.OutOrStdout())

		return withEnv(cmd, func(env *appEnv) error {
			return runEventAdd(cmd, env.model, f, kit.Prompt, time.Now)
		})
	},
}.Build()

func runEventAdd(cmd *cobra.Command, model *calendar.Model, f calendar.Form, prompt PromptFunc, nowFn func() time.Time) error {
	if _, ok := model.Anchor(); !ok {
		return calendar.ErrNoBirthday
	}

	var err error
	if strings.TrimSpace(f.Name) == "" {
		if f.Name, err = prompt("Event name"); err != nil {
			return err
		}
	}
	if strings.TrimSpace(f.StartDate) == "" {
		if f.StartDate, err = prompt("Start date"); err != nil {
			return err
		}
	}
	if strings.TrimSpace(f.EndDate) == "" {
		f.EndDate = f.StartDate
	}

	now := nowFn()
	f.ID = 0
	f.StartDate = resolveDate(f.StartDate, now)
	f.EndDate = resolveDate(f.EndDate, now)

	e, err := model.SaveEvent(f)
	if err := storageWarning(cmd.ErrOrStderr(), err); err != nil {
		return describeError(err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatEventLine(e))
	return nil
}
