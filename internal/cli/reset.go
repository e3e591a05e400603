package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
)

var resetCmd = LeafCommand{
	Use:   "reset",
	Short: "Forget the birthday and every event",
	Args:  cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "yes", Shorthand: "y", Usage: "skip the confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		confirm := NewPromptKit(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm
		if yes {
			confirm = AlwaysYes()
		}

		return withEnv(cmd, func(env *appEnv) error {
			return runReset(cmd, env.model, confirm)
		})
	},
}.Build()

func runReset(cmd *cobra.Command, model *calendar.Model, confirm ConfirmFunc) error {
	out := cmd.OutOrStdout()

	ok, err := confirm("Are you sure you want to reset all data? This cannot be undone.")
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(out, "Reset cancelled.")
		return nil
	}

	if err := storageWarning(cmd.ErrOrStderr(), model.Reset()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "All data cleared from %s\n", Silent(model.StoragePath()))
	return nil
}
