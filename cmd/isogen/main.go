// isogen compiles country and timezone documents into the isocountry
// lookup tables.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hightemp/isocountry/internal/cli"
)

// Build information (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildTime = buildTime

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
