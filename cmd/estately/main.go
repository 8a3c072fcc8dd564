package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/edvin/estately/cmd/estately/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.Root().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
