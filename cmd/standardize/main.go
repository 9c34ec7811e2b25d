package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cvmstd/internal/app"
)

func main() {
	inDir := flag.String("in", "", "input directory with raw filings (defaults to config)")
	outDir := flag.String("out", "", "output directory for standardized CSVs (defaults to config)")
	sectorFile := flag.String("sectors", "", "sector classification CSV (defaults to config)")
	tickers := flag.String("tickers", "", "comma-separated tickers to process (default: all discovered)")
	statements := flag.String("statements", "", "comma-separated statements to process: income,cashflow")
	workers := flag.Int("workers", 0, "concurrent standardization runs (defaults to config)")
	combined := flag.String("combined", "", "file name for the combined long-format CSV, or none to disable (defaults to config)")
	flag.Parse()

	application, err := app.NewApplication(app.Options{
		InputDir:    *inDir,
		OutputDir:   *outDir,
		SectorFile:  *sectorFile,
		Tickers:     splitList(*tickers),
		Statements:  splitList(*statements),
		Workers:     *workers,
		CombinedCSV: *combined,
	})
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := application.Run(ctx)
	if err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Standardized %d of %d runs (%d skipped, %d failed)\n",
		summary.Succeeded, summary.Runs, summary.Skipped, summary.Failed)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
