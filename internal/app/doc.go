// Package app assembles the standardization batch job.
//
// Application owns the wiring: configuration with command-line
// overrides, the global structured logger, the sector table, the
// CSV/XLSX loaders, the standardization engine and the CSV exporter.
// Run drives one batch: discover filings in the input directory,
// fan the (ticker, statement) runs out over a bounded worker pool,
// and write one wide CSV per run plus the optional combined
// long-format CSV.
//
// Each run carries its own trace ID so every log line of a run can be
// correlated. Failures are scoped to their run: a filing that does not
// load or validate is logged and counted in the Summary while the rest
// of the batch continues.
//
// Example usage:
//
//	application, err := app.NewApplication(app.Options{
//		InputDir: "data/input",
//		Tickers:  []string{"PETR4", "VALE3"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	summary, err := application.Run(ctx)
package app
