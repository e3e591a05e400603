package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/config"
)

var configSetCmd = LeafCommand{
	Use:     "set KEY VALUE",
	Short:   "Change one setting",
	Example: "  lifecal config set storage sqlite\n  lifecal config set years 90",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		return runConfigSet(cmd, dir, args[0], args[1])
	},
}.Build()

func runConfigSet(cmd *cobra.Command, dir, key, value string) error {
	cfg, err := config.ReadFile(dir)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("%w (keys: %s)", err, strings.Join(config.Keys(), ", "))
	}
	if err := config.Save(dir, cfg); err != nil {
		return err
	}

	v, _ := cfg.Get(key)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", Primary(key), v)
	return nil
}
