// Package main is the entry point for the matter CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/thoreinstein/matter/cmd/matter/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := commands.Execute(ctx)
	stop()
	os.Exit(code)
}
