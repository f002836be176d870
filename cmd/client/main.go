package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"TokenGate/internal/cli/commands"
	"TokenGate/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion()
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// os.Exit skips defers, so release the signal handler first
	code := commands.Dispatch(ctx, cfg, flag.Args())
	cancel()
	if code != 0 {
		os.Exit(code)
	}
}

func printVersion() {
	fmt.Printf("tgcli %s (built %s)\n", version, buildDate)
}
