// Command modified-newton solves
//
//	tan(xy + 0.1) = x^2
//	x^2 + 2y^2 = 1
//
// with the modified Newton method, either interactively or over a batch file.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/FabianaFerreira/modified-newton/app"
	"github.com/FabianaFerreira/modified-newton/config"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
