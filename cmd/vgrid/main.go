// Command vgrid browses tabular files in a virtualized terminal grid.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/vgrid/internal/cli"
	"github.com/rshade/vgrid/pkg/version"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(ctx)
}

func main() {
	// cobra has already printed the error.
	if err := run(); err != nil {
		os.Exit(1)
	}
}
