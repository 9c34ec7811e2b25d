// Package exporter provides CSV export functionality for standardized
// statement tables.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// StatementExporter: Writes one <TICKER>_<statement>_standardized.csv
// per run in the wide per-period layout, plus a combined long-format
// export across tickers for analysis tools.
//
// Example usage:
//
//	exp := exporter.NewStatementExporter(paths)
//
//	// Write the wide per-period table
//	path, err := exp.ExportStatement(table)
//
//	// Write all run results into one tall file
//	err = exp.ExportLong(tables, "standardized_long.csv")
package exporter
