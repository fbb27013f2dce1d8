package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sushe-ng/sushe/internal/config"
	"github.com/sushe-ng/sushe/internal/store"
	"github.com/sushe-ng/sushe/internal/tui"
)

func main() {
	dataFlag := flag.String("data", "", "Store directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dataFlag != "" {
		cfg.DataDir = *dataFlag
	}

	// Diagnostics would fight the TUI for the terminal, so they are
	// discarded in interactive mode.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := store.Open(cfg.DataDir, store.Options{
		Logger:            log,
		RecentLimit:       cfg.RecentLimit,
		DefaultCollection: cfg.DefaultCollection,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
