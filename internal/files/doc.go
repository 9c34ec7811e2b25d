// Package files discovers raw statement filings on disk and groups
// them into per-run input sets.
//
// # Naming convention
//
// Filings live flat in the input directory and are named
//
//	<TICKER>_<source>_<statement>.<ext>
//
// where source is itr (quarterly cumulative) or dfp (annual),
// statement is income or cashflow (the Brazilian report names dre and
// dfc are accepted as aliases) and the extension is .csv or .xlsx.
// Separators other than underscores work too; PETR4-itr-income.csv
// parses the same way. When a file name does not lead with the ticker,
// Discovery falls back to matching known tickers anywhere in the name.
//
// # Grouping
//
// Runs pairs each ticker's quarterly filing with its annual filing for
// the same statement. When both a CSV and an XLSX cover the same slot
// the CSV is used.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.InputDir, sectors.Tickers())
//	runs, err := discovery.Runs()
//	if err != nil {
//		return err
//	}
//	runs = files.FilterTickers(runs, cfg.Processing.Tickers)
package files
