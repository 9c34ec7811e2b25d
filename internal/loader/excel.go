package loader

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	apperrors "cvmstd/internal/errors"
	"cvmstd/pkg/contracts/domain"
)

// Excel loads regulator XLSX statement workbooks.
type Excel struct {
	logger *slog.Logger
}

// NewExcel creates an Excel loader. A nil logger falls back to
// slog.Default().
func NewExcel(logger *slog.Logger) *Excel {
	if logger == nil {
		logger = slog.Default()
	}
	return &Excel{logger: logger}
}

// Sheet names tried before falling back to a header scan across every
// sheet in the workbook.
var sheetNames = []string{"DRE", "DFC", "DFC_MI", "DFC_MD", "Dados", "Planilha1", "Sheet1"}

// Load reads one statement workbook into a raw table. The data sheet
// is found by probing the common sheet names first and then scanning
// every sheet for the statement header.
func (l *Excel) Load(path string, source domain.SourceKind) (*domain.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open statement workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	rows, sheet, ok := probeSheets(f)
	if !ok {
		return nil, apperrors.NewSchemaError("no sheet with statement columns found", nil).
			WithContext("path", path)
	}

	headerIdx, cols, _ := findHeader(rows)
	if miss := cols.missing(); len(miss) > 0 {
		return nil, apperrors.NewSchemaError(
			fmt.Sprintf("statement sheet missing required columns %v", miss), nil).
			WithContext("path", path).
			WithContext("sheet", sheet)
	}
	dataRows := rows[headerIdx+1:]

	unit, err := tableUnit(dataRows, cols)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return nil, err
	}

	items, skipped := convertRows(dataRows, cols)
	l.logger.Debug("statement workbook loaded",
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.String("source", string(source)),
		slog.Int("rows", len(items)),
		slog.Int("skipped", skipped))

	return &domain.RawTable{Kind: source, Unit: unit, Rows: items}, nil
}

// probeSheets returns the rows of the first sheet carrying the
// statement header.
func probeSheets(f *excelize.File) ([][]string, string, bool) {
	for _, name := range sheetNames {
		if rows, err := f.GetRows(name); err == nil && hasHeader(rows) {
			return rows, name, true
		}
	}
	for _, name := range f.GetSheetList() {
		if rows, err := f.GetRows(name); err == nil && hasHeader(rows) {
			return rows, name, true
		}
	}
	return nil, "", false
}

func hasHeader(rows [][]string) bool {
	_, _, ok := findHeader(rows)
	return ok
}
