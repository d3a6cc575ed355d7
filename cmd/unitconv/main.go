package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-unitconv/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(cli.Deps{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "unitconv:", err)
		stop()
		os.Exit(1)
	}
}
