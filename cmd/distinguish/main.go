// Command distinguish compares invariants of triangulations grouped by the
// manifold they claim to represent.
//
//	distinguish [--rmax N] [--json] [--config file] input.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "distinguish:", err)
		stop()
		os.Exit(1)
	}
}
