package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"molten-core/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
