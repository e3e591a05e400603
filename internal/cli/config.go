package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/config"
)

var configCmd = GroupCommand{
	Use:   "config",
	Short: "Read and change lifecal settings",
	Subcommands: []*cobra.Command{
		configListCmd,
		configGetCmd,
		configSetCmd,
		configResetCmd,
	},
}.Build()

// dataDir resolves the directory holding config.toml and the calendar data.
func dataDir() (string, error) {
	dir, err := config.Dir(flagHome)
	if err != nil {
		return "", fmt.Errorf("resolving data directory: %w", err)
	}
	return dir, nil
}

var configListCmd = LeafCommand{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show every setting",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		return runConfigList(cmd, dir)
	},
}.Build()

func runConfigList(cmd *cobra.Command, dir string) error {
	cfg, err := config.ReadFile(dir)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "%s\n", Silent("# "+config.Path(dir)))
	for _, key := range config.Keys() {
		v, _ := cfg.Get(key)
		_, _ = fmt.Fprintf(w, "%s = %s\n", Primary(key), v)
	}
	return nil
}
