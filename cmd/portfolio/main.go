package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtroode/portfolio/internal/client/app"
	"github.com/dtroode/portfolio/internal/config"
	"github.com/dtroode/portfolio/internal/logger"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	cfg, err := config.NewClientConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fs := flag.NewFlagSet("portfolio", flag.ContinueOnError)
	fs.StringVar(&cfg.APIURL, "api", cfg.APIURL, "portfolio API base URL")
	fs.StringVar(&cfg.AdminUID, "admin-uid", cfg.AdminUID, "privileged user id")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-request timeout")
	fs.IntVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "slog level for diagnostics")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: portfolio [flags] [command]\n\nRuns an interactive shell when no command is given.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, os.Stdin, os.Stdout, logger.NewWithWriter(os.Stderr, cfg.LogLevel).Named("portfolio-cli"))
	if err != nil {
		return err
	}
	defer a.Close()

	args := fs.Args()
	if len(args) == 0 {
		return a.Run(ctx)
	}

	switch args[0] {
	case "shell":
		return a.Run(ctx)
	case "version", "--version", "-v":
		fmt.Printf("portfolio %s (%s, %s)\n", buildVersion, buildCommit, buildDate)
		return nil
	default:
		return a.Exec(ctx, args)
	}
}
