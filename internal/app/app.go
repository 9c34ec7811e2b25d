package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cvmstd/internal/config"
	"cvmstd/internal/exporter"
	"cvmstd/internal/files"
	"cvmstd/internal/infrastructure"
	"cvmstd/internal/loader"
	"cvmstd/internal/sector"
	"cvmstd/internal/standardize"
	"cvmstd/internal/validation"
	"cvmstd/pkg/contracts/domain"
)

// Options are command-line overrides applied on top of the loaded
// configuration. Zero values leave the configured value alone.
type Options struct {
	InputDir    string
	OutputDir   string
	SectorFile  string
	Tickers     []string
	Statements  []string
	Workers     int
	CombinedCSV string
}

// Application wires configuration, logging, loaders, the engine and
// the exporter into a runnable batch job.
type Application struct {
	Config  *config.Config
	Paths   *config.Paths
	Logger  *slog.Logger
	Sectors *sector.Table

	validator  *validation.FileValidator
	engine     *standardize.Engine
	csvLoader  *loader.CSV
	xlsxLoader *loader.Excel
	exporter   *exporter.StatementExporter
}

// Summary reports what a batch run did.
type Summary struct {
	Runs      int
	Succeeded int
	Skipped   int
	Failed    int
	Outputs   []string
	Duration  time.Duration
}

// NewApplication loads configuration, applies the command-line
// overrides, initializes the global logger and assembles the
// application.
func NewApplication(opts Options) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	applyOverrides(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))

	return NewWithConfig(cfg, logger)
}

// NewWithConfig builds an application from an already validated
// configuration. The caller owns logger setup; a nil logger falls
// back to slog.Default().
func NewWithConfig(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, err
	}

	app := &Application{
		Config:     cfg,
		Paths:      paths,
		Logger:     logger,
		validator:  validation.NewFileValidator(logger),
		engine:     standardize.New(logger),
		csvLoader:  loader.NewCSV(logger),
		xlsxLoader: loader.NewExcel(logger),
		exporter:   exporter.NewStatementExporter(paths),
	}

	if err := app.loadSectors(); err != nil {
		return nil, err
	}
	return app, nil
}

// Run discovers filings, standardizes them with a bounded worker pool
// and writes the output CSVs. A failed run is logged and counted but
// does not stop the batch; Run itself fails only on setup problems,
// cancellation or a broken combined export.
func (a *Application) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, config.DefaultRunTimeout)
	defer cancel()

	if err := a.validator.ValidateInputDirectory(a.Paths.InputDir, "*_*_*.*"); err != nil {
		return nil, err
	}
	if err := a.validator.ValidateOutputDirectory(a.Paths.OutputDir); err != nil {
		return nil, err
	}

	var known []string
	if a.Sectors != nil {
		known = a.Sectors.Tickers()
	}
	runs, err := files.NewDiscovery(a.Paths.InputDir, known).Runs()
	if err != nil {
		return nil, err
	}
	runs = files.FilterTickers(runs, a.Config.Processing.Tickers)
	runs = filterStatements(runs, a.Config.Processing.Statements)

	a.Logger.Info("Filings discovered",
		slog.Int("runs", len(runs)),
		slog.Int("tickers", len(files.Tickers(runs))),
		slog.String("input_dir", a.Paths.InputDir))

	summary := &Summary{Runs: len(runs)}
	var (
		mu     sync.Mutex
		tables []*domain.StatementTable
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.Processing.Workers)
	for _, run := range runs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			runCtx := infrastructure.ContextWithTraceID(gctx)
			logger := a.Logger.With(
				slog.String("trace_id", infrastructure.GetTraceID(runCtx)),
				slog.String("ticker", run.Ticker),
				slog.String("statement", string(run.Statement)))

			if run.Quarterly == nil {
				logger.Warn("No quarterly filing for run, skipping",
					slog.String("annual", run.Annual.Name))
				mu.Lock()
				summary.Skipped++
				mu.Unlock()
				return nil
			}

			table, outputPath, err := a.processRun(runCtx, logger, run)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				infrastructure.WithError(logger, err).Error("Standardization run failed")
				summary.Failed++
				return nil
			}
			summary.Succeeded++
			summary.Outputs = append(summary.Outputs, outputPath)
			tables = append(tables, table)
			logger.Info("Standardized statement written",
				slog.String("output", outputPath),
				slog.Int("periods", len(table.Periods)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(summary.Outputs)
	sort.Slice(tables, func(i, j int) bool {
		if tables[i].Ticker != tables[j].Ticker {
			return tables[i].Ticker < tables[j].Ticker
		}
		return tables[i].Kind < tables[j].Kind
	})

	if name := a.Config.Processing.CombinedCSV; name != "" && len(tables) > 0 {
		if err := a.exporter.ExportLong(tables, name); err != nil {
			return nil, err
		}
		combined := a.Paths.OutputPath(name)
		summary.Outputs = append(summary.Outputs, combined)
		a.Logger.Info("Combined long-format CSV written",
			slog.String("output", combined),
			slog.Int("tables", len(tables)))
	}

	summary.Duration = time.Since(start)
	a.Logger.Info("Batch complete",
		slog.Int("runs", summary.Runs),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
		slog.Duration("duration", summary.Duration))
	return summary, nil
}

// processRun loads the filings of one run, standardizes them and
// writes the per-statement CSV.
func (a *Application) processRun(ctx context.Context, logger *slog.Logger, run files.StatementFiles) (*domain.StatementTable, string, error) {
	quarterly, err := a.loadFiling(run.Quarterly)
	if err != nil {
		return nil, "", err
	}
	var annual *domain.RawTable
	if run.Annual != nil {
		annual, err = a.loadFiling(run.Annual)
		if err != nil {
			return nil, "", err
		}
	} else {
		logger.Debug("No annual filing, fourth quarters stay open")
	}

	table, err := a.engine.Run(ctx, standardize.Input{
		Ticker:    run.Ticker,
		Kind:      run.Statement,
		Sectors:   a.Sectors,
		Quarterly: quarterly,
		Annual:    annual,
	})
	if err != nil {
		return nil, "", err
	}

	outputPath, err := a.exporter.ExportStatement(table)
	if err != nil {
		return nil, "", err
	}
	return table, outputPath, nil
}

// loadFiling validates a filing and loads it with the loader matching
// its extension.
func (a *Application) loadFiling(filing *files.Filing) (*domain.RawTable, error) {
	if err := a.validator.ValidateFilingFile(filing.Path); err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(filing.Path), ".xlsx") {
		return a.xlsxLoader.Load(filing.Path, filing.Source)
	}
	return a.csvLoader.Load(filing.Path, filing.Source)
}

// loadSectors reads the configured sector table. A missing file only
// disables label-based classification, the built-in ticker lists still
// apply.
func (a *Application) loadSectors() error {
	path := a.Paths.SectorFile
	if path == "" {
		a.Logger.Info("No sector table configured, using built-in ticker lists")
		return nil
	}
	if !config.FileExists(path) {
		a.Logger.Warn("Sector table not found, using built-in ticker lists",
			slog.String("path", path))
		return nil
	}

	table, err := sector.LoadTable(path)
	if err != nil {
		return err
	}
	a.Sectors = table
	a.Logger.Info("Sector table loaded",
		slog.String("path", path),
		slog.Int("tickers", table.Len()))
	return nil
}

// applyOverrides copies the non-zero options onto the configuration.
// CombinedCSV accepts config.CombinedCSVDisabled to clear the
// configured combined export name.
func applyOverrides(cfg *config.Config, opts Options) {
	if opts.InputDir != "" {
		cfg.Paths.InputDir = opts.InputDir
	}
	if opts.OutputDir != "" {
		cfg.Paths.OutputDir = opts.OutputDir
	}
	if opts.SectorFile != "" {
		cfg.Paths.SectorFile = opts.SectorFile
	}
	if len(opts.Tickers) > 0 {
		cfg.Processing.Tickers = opts.Tickers
	}
	if len(opts.Statements) > 0 {
		cfg.Processing.Statements = opts.Statements
	}
	if opts.Workers > 0 {
		cfg.Processing.Workers = opts.Workers
	}
	if opts.CombinedCSV != "" {
		cfg.Processing.CombinedCSV = opts.CombinedCSV
		if strings.EqualFold(opts.CombinedCSV, config.CombinedCSVDisabled) {
			cfg.Processing.CombinedCSV = ""
		}
	}
}

// filterStatements keeps only the runs whose statement kind is in the
// allow list. An empty list keeps everything.
func filterStatements(runs []files.StatementFiles, statements []string) []files.StatementFiles {
	if len(statements) == 0 {
		return runs
	}
	allowed := make(map[string]bool, len(statements))
	for _, statement := range statements {
		allowed[strings.ToLower(strings.TrimSpace(statement))] = true
	}

	var filtered []files.StatementFiles
	for _, run := range runs {
		if allowed[string(run.Statement)] {
			filtered = append(filtered, run)
		}
	}
	return filtered
}
