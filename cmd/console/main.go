package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/secondhand/console/internal/domain/shared"
	"github.com/secondhand/console/internal/interfaces/cli"
)

// Exit codes.
const (
	exitError       = 1
	exitRefused     = 3
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		fmt.Fprintln(os.Stderr, "\nOperation cancelled by user")
		stop()
		os.Exit(exitInterrupted)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	stop()
	if errors.Is(err, shared.ErrNotLoggedIn) || errors.Is(err, shared.ErrForbidden) {
		os.Exit(exitRefused)
	}
	os.Exit(exitError)
}
