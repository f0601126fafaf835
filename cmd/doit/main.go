package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jaekwang-park/doit-client/cmd/doit/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Errors are printed by the printer package before they get here.
	if err := commands.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
