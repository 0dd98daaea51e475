package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"smartspend/internal/cli"
	"smartspend/internal/log"
	"smartspend/internal/shell"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig(log.New(log.DefaultConfig()))
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Configuration Error: %v\n", err)
		return 1
	}

	logger := cli.SetupLogger(cfg, os.Stderr)
	ctx := context.Background()

	svc, err := cli.OpenService(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger", "error", err, log.FieldBackend, cfg.DataBackend)
		fmt.Fprintf(os.Stderr, "Storage Error: %v\n", err)
		return 1
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close ledger", "error", err)
		}
	}()

	stop := cli.HandleInterrupt(logger, svc)
	defer stop()

	return shell.New(svc, os.Stdin, os.Stdout, os.Stderr).Run(ctx, args)
}
