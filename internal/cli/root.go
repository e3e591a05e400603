package cli

import (
	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/logger"
)

var (
	flagVerbose   bool
	flagHome      string
	flagEphemeral bool
)

var rootCmd = &cobra.Command{
	Use:          "lifecal",
	Short:        "Your life in weeks",
	Long:         "lifecal draws your life as a grid of weeks starting at your birthday and lays\nnamed, colored events over it.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(flagVerbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagHome, "home", "", "data directory (default $LIFECAL_HOME or ~/.lifecal)")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "keep data in memory only")
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
