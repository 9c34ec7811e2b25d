package sector

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	apperrors "cvmstd/internal/errors"
	"cvmstd/internal/textnorm"
)

// Table is the read-only ticker to B3 segment lookup passed into a
// run. It is loaded once by the caller and never mutated afterwards,
// so concurrent runs can share one instance.
type Table struct {
	segments map[string]string
}

// NewTable builds a table from an in-memory ticker to segment map.
// Keys are normalized to upper case.
func NewTable(segments map[string]string) *Table {
	normalized := make(map[string]string, len(segments))
	for ticker, segment := range segments {
		symbol := strings.ToUpper(strings.TrimSpace(ticker))
		if symbol == "" {
			continue
		}
		normalized[symbol] = strings.TrimSpace(segment)
	}
	return &Table{segments: normalized}
}

// Segment returns the B3 segment label recorded for a ticker.
func (t *Table) Segment(ticker string) (string, bool) {
	segment, ok := t.segments[strings.ToUpper(strings.TrimSpace(ticker))]
	return segment, ok
}

// Len returns the number of tickers in the table.
func (t *Table) Len() int {
	return len(t.segments)
}

// LoadTable reads a B3 sector classification CSV. The file may be
// comma or semicolon separated (B3 publishes semicolon files); the
// delimiter is sniffed from the header line. Required columns are a
// ticker column (CODIGO, TICKER or PAPEL) and a segment column
// (SEGMENTO, or SUBSETOR when SEGMENTO is absent), located by
// header-name scan.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read sector table", err).
			WithContext("path", path)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse sector table", err).
			WithContext("path", path)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("sector table is empty", nil).
			WithContext("path", path)
	}

	tickerIdx := -1
	segmentIdx := -1
	subsectorIdx := -1
	for i, header := range records[0] {
		switch textnorm.Normalize(strings.TrimSpace(header)) {
		case "codigo", "ticker", "papel":
			tickerIdx = i
		case "segmento":
			segmentIdx = i
		case "subsetor":
			subsectorIdx = i
		}
	}
	if segmentIdx == -1 {
		segmentIdx = subsectorIdx
	}
	if tickerIdx == -1 || segmentIdx == -1 {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("sector table missing required columns in header %v", records[0]), nil).
			WithContext("path", path)
	}

	segments := make(map[string]string)
	for _, record := range records[1:] {
		if tickerIdx >= len(record) || segmentIdx >= len(record) {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(record[tickerIdx]))
		if symbol == "" {
			continue
		}
		segments[symbol] = strings.TrimSpace(record[segmentIdx])
	}

	return &Table{segments: segments}, nil
}

// Tickers returns the tickers present in the table, for ticker
// inference against file names.
func (t *Table) Tickers() []string {
	tickers := make([]string, 0, len(t.segments))
	for symbol := range t.segments {
		tickers = append(tickers, symbol)
	}
	return tickers
}

func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}
