package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/client"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/config"
	"github.com/BerylCAtieno/chemical-equipment-visualizer/internal/utils"
)

const usage = `Usage: visualizer [-api URL] <command> [arguments]

Commands:
  upload FILE                    upload an equipment CSV or XLSX and print its summary
  history [-page N] [-size N]    list previous uploads, newest first
  preview ID                     show the first rows of an uploaded dataset
  report URL [-text] [-open]     download a PDF report, optionally print its text or open it
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var apiURL string
	var timeout time.Duration
	flag.StringVar(&apiURL, "api", cfg.APIBaseURL, "API base URL")
	flag.DurationVar(&timeout, "timeout", 60*time.Second, "Request timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	api, err := client.New(apiURL, timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	c := &cli{
		api:       api,
		out:       os.Stdout,
		reportDir: filepath.Join(home, "Downloads", "chemical_visualizer_reports"),
		now:       time.Now,
		open:      utils.OpenFile,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
