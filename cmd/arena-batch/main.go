package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/arena/internal/batchrun"
	"github.com/okian/arena/pkg/logger"
)

// Default configuration constants.
const (
	defaultGames       = 100
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultMaxTicks    = 1000
	defaultHTTPTimeout = 5 * time.Minute
	defaultRunTimeout  = 30 * time.Minute
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, plays the batch and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("arena-batch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		games    = fs.Int("games", defaultGames, "Number of games to play")
		seed     = fs.Int64("seed", 0, "Base seed; game i uses seed+i (0: random per game)")
		workers  = fs.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of in-process workers")
		maxTicks = fs.Int("max-ticks", defaultMaxTicks, "Tick limit per game, 0 for none")
		catalog  = fs.String("catalog", "", "Template catalog file (default: embedded catalog)")
		baseURL  = fs.String("url", "", "Run on an arena server instead of in-process")
		timeout  = fs.Duration("timeout", defaultHTTPTimeout, "HTTP request timeout for -url")
		format   = fs.String("format", batchrun.FormatText, "Report format, text or json")
		output   = fs.String("output", "", "Also write the report to this file")
		verbose  = fs.Bool("verbose", false, "Enable verbose logging")
		help     = fs.Bool("help", false, "Show help")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		batchrun.ShowHelp(stdout)
		return 0
	}

	// Logs go to stderr so stdout carries only the report.
	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return 1
	}
	level := "warn"
	if *verbose {
		level = "debug"
	}
	_ = logger.SetLevelString(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &batchrun.Config{
		BaseURL:     *baseURL,
		Games:       *games,
		Workers:     *workers,
		MaxTicks:    *maxTicks,
		CatalogPath: *catalog,
		Timeout:     *timeout,
		Format:      *format,
		OutputFile:  *output,
	}
	if *seed != 0 {
		cfg.Seed = seed
	}

	if _, err := batchrun.Run(ctx, cfg, stdout); err != nil {
		_, _ = io.WriteString(stderr, "batch failed: "+err.Error()+"\n")
		return 1
	}
	return 0
}
