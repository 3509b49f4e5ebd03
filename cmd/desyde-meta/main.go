// Command desyde-meta explores mappings and schedules of dataflow
// applications on a multiprocessor platform.
//
// Usage:
//
//	desyde-meta -config run.yaml [-model problem.yaml] [-db runs.db] [-seed 7]
//
// The Pareto front is printed when the search ends or is interrupted, and
// stored when a database path is configured.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		color.Error.Println(fmt.Sprintf("desyde-meta: %v", err))
		os.Exit(1)
	}
}
