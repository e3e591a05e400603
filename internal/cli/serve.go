package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/logger"
	"github.com/wiverson/life-calendar/internal/web"
)

var serveCmd = LeafCommand{
	Use:   "serve",
	Short: "Serve the calendar as a web page",
	Args:  cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "listen", Shorthand: "l", Usage: "address to listen on (default from config, 127.0.0.1:8080)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		listen, _ := cmd.Flags().GetString("listen")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withEnv(cmd, func(env *appEnv) error {
			if listen == "" {
				listen = env.cfg.Listen
			}
			return runServe(ctx, cmd, env, listen)
		})
	},
}.Build()

func runServe(ctx context.Context, cmd *cobra.Command, env *appEnv, listen string) error {
	if !logger.IsVerbose() {
		logger.SetLevel(slog.LevelInfo)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on %s\n", Silent(env.model.StoragePath()), Primary("http://"+listen))
	return web.NewServer(env.model).ListenAndServe(ctx, listen)
}
