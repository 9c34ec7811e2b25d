package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	apperrors "cvmstd/internal/errors"
	"cvmstd/pkg/contracts/domain"
)

// CSV loads CVM open-data and provider statement exports.
type CSV struct {
	logger *slog.Logger
}

// NewCSV creates a CSV loader. A nil logger falls back to slog.Default().
func NewCSV(logger *slog.Logger) *CSV {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSV{logger: logger}
}

// Load reads one statement file into a raw table. The delimiter is
// sniffed from the header line (CVM publishes semicolon files) and the
// bytes are transcoded from Latin-1 when they are not valid UTF-8,
// which is how the CVM portal encodes its exports.
func (l *CSV) Load(path string, source domain.SourceKind) (*domain.RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read statement file", err).
			WithContext("path", path)
	}
	if !utf8.Valid(data) {
		if decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(data); decErr == nil {
			data = decoded
		}
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse statement file", err).
			WithContext("path", path)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("statement file is empty", nil).
			WithContext("path", path)
	}

	headerIdx, cols, ok := findHeader(records)
	if !ok {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("statement file missing required columns %v", mapHeader(records[0]).missing()), nil).
			WithContext("path", path)
	}
	if miss := cols.missing(); len(miss) > 0 {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("statement file missing required columns %v", miss), nil).
			WithContext("path", path)
	}

	dataRows := records[headerIdx+1:]
	unit, err := tableUnit(dataRows, cols)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return nil, err
	}

	items, skipped := convertRows(dataRows, cols)
	l.logger.Debug("statement file loaded",
		slog.String("path", path),
		slog.String("source", string(source)),
		slog.Int("rows", len(items)),
		slog.Int("skipped", skipped))

	return &domain.RawTable{Kind: source, Unit: unit, Rows: items}, nil
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
