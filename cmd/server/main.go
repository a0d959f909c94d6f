// @title           Figma Node Tree API
// @version         1.0.0
// @description     Fetches a Figma node and returns its simplified hierarchy.
// @schemes         http https
// @BasePath        /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"figma-node-tree/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
