package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lucrnz/seconds/internal/cli"
)

func main() {
	// Cancelled on interrupt so a blocked stdin read gives up
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Main(ctx)
	stop()
	os.Exit(code)
}
