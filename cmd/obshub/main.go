package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/obspy/obshub/internal/interfaces/cli"
	"github.com/obspy/obshub/internal/interfaces/di"
)

func main() {
	container := di.NewContainer()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx, container.GetCLIContainer())
	cancel()

	os.Exit(code)
}
