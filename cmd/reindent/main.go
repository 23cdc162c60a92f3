package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, newRootCmd())
	stop()
	os.Exit(code)
}

// execute runs cmd and returns the process exit code. Check and per-file
// failures have already been reported, so only other errors are printed.
func execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if !errors.Is(err, errCheckFailed) && !errors.Is(err, errFilesFailed) {
		fmt.Fprintf(cmd.ErrOrStderr(), "reindent: %v\n", err)
	}
	return 1
}
