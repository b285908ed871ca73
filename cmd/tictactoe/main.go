package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/tictactoe-history/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root, closeTelemetry := cli.Root(os.Stderr)
	root.SetArgs(os.Args[1:])
	err := root.ExecuteContext(ctx)
	closeTelemetry(ctx)
	stop()

	if err != nil {
		log.Fatalf("tictactoe: %v", err)
	}
}
