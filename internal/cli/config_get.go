package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/config"
)

var configGetCmd = LeafCommand{
	Use:   "get KEY",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		return runConfigGet(cmd, dir, args[0])
	},
}.Build()

func runConfigGet(cmd *cobra.Command, dir, key string) error {
	cfg, err := config.ReadFile(dir)
	if err != nil {
		return err
	}
	v, err := cfg.Get(key)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
	return err
}
