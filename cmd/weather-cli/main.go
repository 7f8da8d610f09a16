package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/i474232898/weather-cli/internal/app"
	"github.com/i474232898/weather-cli/internal/config"
	"github.com/i474232898/weather-cli/internal/logging"
)

const appName = "weather-cli"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 on failure, 2 on flag errors.
func run(args []string, stdin, stdout, stderr *os.File) int {
	flags, err := config.ParseFlags(appName, args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger := logging.New(stderr, cfg.LogLevel, appName)

	// Shared HTTP client with a bounded timeout for the provider call.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	terminal := isatty.IsTerminal(stdout.Fd()) || isatty.IsCygwinTerminal(stdout.Fd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = app.Run(ctx, cfg, app.Deps{
		Stdout:   colorable.NewColorable(stdout),
		Stderr:   colorable.NewColorable(stderr),
		Prompter: config.TerminalPrompter{In: stdin, Out: stderr},
		Client:   httpClient,
		Logger:   logger,
		Terminal: terminal,
	})
	if err != nil {
		return 1
	}
	return 0
}
