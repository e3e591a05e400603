package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
)

var eventRemoveCmd = LeafCommand{
	Use:     "remove [ID]",
	Aliases: []string{"rm"},
	Short:   "Remove an event",
	Args:    cobra.MaximumNArgs(1),
	BoolFlags: []BoolFlag{
		{Name: "yes", Shorthand: "y", Usage: "skip the confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		kit := NewPromptKit(cmd.InOrStdin(), cmd.OutOrStdout())
		if yes {
			kit.Confirm = AlwaysYes()
		}

		return withEnv(cmd, func(env *appEnv) error {
			return runEventRemove(cmd, env.model, args, kit)
		})
	},
}.Build()

func runEventRemove(cmd *cobra.Command, model *calendar.Model, args []string, kit PromptKit) error {
	out := cmd.OutOrStdout()

	e, err := resolveEvent(model, args, kit.Select, "Which event do you want to remove?")
	if err != nil {
		return err
	}

	ok, err := kit.Confirm(fmt.Sprintf("Remove %q (%s → %s)?", e.Name, e.StartDate, e.EndDate))
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(out, "Nothing removed.")
		return nil
	}

	if err := storageWarning(cmd.ErrOrStderr(), model.DeleteEvent(e.ID)); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Removed %s\n", formatEventLine(e))
	return nil
}
