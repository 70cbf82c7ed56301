package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/accountvault/internal/tools/vaultctl"
)

func main() {
	cfg, err := vaultctl.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		vaultctl.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := vaultctl.Run(ctx, cfg, os.Stdout, os.Stdin); err != nil {
		stop()
		vaultctl.Exitf("%s: %v", cfg.Command, err)
	}
}
