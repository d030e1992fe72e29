package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/inobat/internal/config"
	"github.com/JonMunkholm/inobat/internal/core"
	_ "github.com/JonMunkholm/inobat/internal/core/tables" // Register categories and keywords
	"github.com/JonMunkholm/inobat/internal/handler"
	"github.com/JonMunkholm/inobat/internal/logging"
	"github.com/JonMunkholm/inobat/internal/report"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists; variables already set in the shell win
	envLoaded := godotenv.Load() == nil

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, envLoaded)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, envLoaded bool) int {
	// Load and validate configuration
	cfg, err := config.Load(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		fmt.Fprintln(stderr, core.FormatUserError(err))
		return 1
	}

	// Setup structured logging based on config
	logging.Setup(stderr, cfg.Logging.Level, cfg.Logging.Format)

	ctx, _ = logging.WithRunID(ctx)
	log := logging.FromContext(ctx)
	log.Info("configuration loaded", "config", cfg.String(), "env_file", envLoaded)
	log.Debug("categories registered", "count", core.CategoryCount())

	res, err := handler.Convert(ctx, handler.OptionsFromConfig(cfg))
	if err != nil {
		log.Error("conversion failed", "error", err)
		printError(stderr, err)
		return 1
	}

	if err := report.Print(stdout, cfg.Output.Path, res.Totals, res.Stats, cfg.Report.ShowSkipped); err != nil {
		log.Error("report failed", "error", err)
		return 1
	}
	return 0
}

// printError writes the user message for err. Errors without a dedicated
// message also get the underlying error, since the generic text says nothing
// about the cause.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, core.FormatUserError(err))
	if !core.IsUserFacing(err) {
		fmt.Fprintf(w, "Details: %v\n", err)
	}
}
