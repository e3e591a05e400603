package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
)

var eventEditCmd = LeafCommand{
	Use:      "edit [ID]",
	Short:    "Change an event",
	Args:     cobra.MaximumNArgs(1),
	StrFlags: eventFlagDefs,
	RunE: func(cmd *cobra.Command, args []string) error {
		changes := formFromFlags(cmd)
		kit := NewPromptKit(cmd.InOrStdin(), cmd.OutOrStdout())

		return withEnv(cmd, func(env *appEnv) error {
			return runEventEdit(cmd, env.model, args, changes, kit, time.Now)
		})
	},
}.Build()

// runEventEdit applies the non-empty fields of changes to the chosen event.
// With no changes given every field is prompted, keeping the current value
// on an empty answer.
func runEventEdit(cmd *cobra.Command, model *calendar.Model, args []string, changes calendar.Form, kit PromptKit, nowFn func() time.Time) error {
	e, err := resolveEvent(model, args, kit.Select, "Which event do you want to edit?")
	if err != nil {
		return err
	}
	f, _ := model.Form(e.ID)

	if changes == (calendar.Form{}) {
		fields := []struct {
			label string
			value *string
		}{
			{"Name", &f.Name},
			{"Start date", &f.StartDate},
			{"End date", &f.EndDate},
			{"Color", &f.Color},
		}
		for _, field := range fields {
			answer, err := kit.Prompt(fmt.Sprintf("%s [%s]", field.label, *field.value))
			if err != nil {
				return err
			}
			if answer != "" {
				*field.value = answer
			}
		}
	} else {
		if changes.Name != "" {
			f.Name = changes.Name
		}
		if changes.StartDate != "" {
			f.StartDate = changes.StartDate
		}
		if changes.EndDate != "" {
			f.EndDate = changes.EndDate
		}
		if changes.Color != "" {
			f.Color = changes.Color
		}
	}

	now := nowFn()
	f.StartDate = resolveDate(f.StartDate, now)
	f.EndDate = resolveDate(f.EndDate, now)

	saved, err := model.SaveEvent(f)
	if err := storageWarning(cmd.ErrOrStderr(), err); err != nil {
		return describeError(err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatEventLine(saved))
	return nil
}
