package exporter

import (
	"fmt"

	"cvmstd/internal/config"
	"cvmstd/pkg/contracts/domain"
)

// StatementExporter writes standardized statement tables to the
// output directory.
type StatementExporter struct {
	csvWriter *CSVWriter
	paths     *config.Paths
}

// NewStatementExporter creates a new statement exporter
func NewStatementExporter(paths *config.Paths) *StatementExporter {
	return &StatementExporter{
		csvWriter: NewCSVWriter(paths),
		paths:     paths,
	}
}

// ExportStatement writes one standardized table as
// <TICKER>_<statement>_standardized.csv and returns the written path.
// Missing cells become blank fields, resolved values are printed with
// two decimals.
func (e *StatementExporter) ExportStatement(table *domain.StatementTable) (string, error) {
	filePath := e.paths.StatementCSVPath(table.Ticker, string(table.Kind))

	records := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, rowToCSVRow(row))
	}

	if err := e.csvWriter.WriteTable(filePath, table.Header(), records); err != nil {
		return "", fmt.Errorf("failed to write statement for %s: %w", table.Ticker, err)
	}
	return filePath, nil
}

// ExportLong writes every table into one tall combined CSV with one
// row per resolved (ticker, account, period) cell.
func (e *StatementExporter) ExportLong(tables []*domain.StatementTable, outputPath string) error {
	stream, err := e.csvWriter.CreateStreamWriter(outputPath, longHeaders())
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	for _, table := range tables {
		for _, row := range table.Rows {
			for i, p := range table.Periods {
				cell := row.Cells[i]
				if !cell.Valid {
					continue
				}
				record := []string{
					table.Ticker,
					string(table.Kind),
					table.Profile,
					row.Code,
					row.Label,
					p.Label(),
					formatFloat(cell.Float64),
				}
				if err := stream.WriteRecord(record); err != nil {
					stream.Close()
					return fmt.Errorf("failed to write record: %w", err)
				}
			}
		}
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}
	return nil
}

// longHeaders returns the CSV headers of the combined long-format file
func longHeaders() []string {
	return []string{"ticker", "statement", "profile", "canonical_code", "canonical_label", "period", "value"}
}

// rowToCSVRow converts one account row to a CSV row
func rowToCSVRow(row domain.StatementRow) []string {
	record := make([]string, 0, len(row.Cells)+2)
	record = append(record, row.Code, row.Label)
	for _, cell := range row.Cells {
		record = append(record, formatAmount(cell))
	}
	return record
}
