// Command censusdb builds, queries, optimises and serves census databases
// keyed by isomorphism signature.
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
	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "censusdb:", err)
		stop()
		os.Exit(1)
	}
}
