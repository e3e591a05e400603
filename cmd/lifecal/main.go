package main

import (
	"os"

	"github.com/wiverson/life-calendar/internal/cli"
	"github.com/wiverson/life-calendar/internal/config"
	"github.com/wiverson/life-calendar/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		logger.Warn("ignoring .env", "err", err)
	}
	cli.SetVersionInfo(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
