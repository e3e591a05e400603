package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/config"
)

var configResetCmd = LeafCommand{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	BoolFlags: []BoolFlag{
		{Name: "yes", Shorthand: "y", Usage: "skip the confirmation prompt"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		confirm := NewPromptKit(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm
		if yes {
			confirm = AlwaysYes()
		}
		return runConfigReset(cmd, dir, confirm)
	},
}.Build()

func runConfigReset(cmd *cobra.Command, dir string, confirm ConfirmFunc) error {
	ok, err := confirm("Restore the default settings?")
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Settings unchanged.")
		return nil
	}
	if err := config.Save(dir, config.DefaultConfig()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Settings restored in %s\n", Silent(config.Path(dir)))
	return nil
}
