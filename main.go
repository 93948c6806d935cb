package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/embudo/cmd"
	"github.com/thenoetrevino/embudo/internal/cli"
	"github.com/thenoetrevino/embudo/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if closer, err := logging.Init(); err == nil {
		defer closer.Close()
	}

	err := cmd.Execute(ctx)
	if err != nil && !isReported(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return cli.ExitCode(err)
}

// isReported is true when the formatter already printed the failure.
func isReported(err error) bool {
	var cmdErr *cli.CommandError
	return errors.As(err, &cmdErr)
}
