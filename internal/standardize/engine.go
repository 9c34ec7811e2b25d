package standardize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cvmstd/internal/chart"
	apperrors "cvmstd/internal/errors"
	"cvmstd/internal/sector"
	"cvmstd/pkg/contracts/domain"
)

// Engine runs the standardization pipeline for one (ticker, statement
// kind) pair per call. It holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	logger *slog.Logger
}

// New creates an engine. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger}
}

// Input carries everything one run needs. Sectors is the read-only
// classification table shared across runs; nil only disables the
// label-based sector checks. A nil raw table is treated as a source
// with no rows, so a ticker without an annual filing still
// standardizes from its quarterly filings alone.
type Input struct {
	Ticker    string
	Kind      domain.StatementKind
	Sectors   *sector.Table
	Quarterly *domain.RawTable
	Annual    *domain.RawTable
}

// Run standardizes one statement. Schema and unit validation happen
// before any row is processed; afterwards the pipeline is pure:
// resolve into the cumulative matrix, isolate quarters, fill derived
// accounts, pivot into the output table. The table is returned, never
// written, and the inputs are not modified.
func (e *Engine) Run(ctx context.Context, input Input) (*domain.StatementTable, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	quarterly := scaledRows(input.Quarterly)
	annual := scaledRows(input.Annual)

	profile := sector.Classify(input.Ticker, input.Sectors)
	c := chart.ForProfile(profile, input.Kind)

	cumulative := BuildPeriodMatrix(c, quarterly, annual)
	isolated := Isolate(c, cumulative)
	filled := FillDerived(c, isolated)
	table := assemble(input, profile, c, filled)

	e.logger.InfoContext(ctx, "standardization run complete",
		slog.String("ticker", input.Ticker),
		slog.String("statement", string(input.Kind)),
		slog.String("profile", string(profile)),
		slog.String("chart", c.Name),
		slog.Int("periods", len(table.Periods)),
		slog.Int("accounts", len(table.Rows)))

	return table, nil
}

func validateInput(input Input) error {
	if strings.TrimSpace(input.Ticker) == "" {
		return apperrors.NewValidationError("ticker must not be empty")
	}
	if !input.Kind.Valid() {
		return apperrors.NewValidationError(
			fmt.Sprintf("unknown statement kind %q", string(input.Kind)))
	}
	if err := validateTable("quarterly", input.Quarterly); err != nil {
		return err
	}
	return validateTable("annual", input.Annual)
}

// validateTable enforces the input preconditions on one raw table:
// a recognized unit token and the five required fields populated on
// every row. Any violation is fatal to the whole run and no partial
// output is produced.
func validateTable(name string, table *domain.RawTable) error {
	if table == nil {
		return nil
	}
	if _, ok := table.Unit.Factor(); !ok {
		return apperrors.NewUnitError(
			fmt.Sprintf("unrecognized unit token %q", string(table.Unit))).
			WithContext("table", name)
	}
	for i, row := range table.Rows {
		switch {
		case row.EndDate.IsZero():
			return schemaError(name, i, "period-end date")
		case row.Quarter < 1 || row.Quarter > 4:
			return schemaError(name, i, "quarter")
		case strings.TrimSpace(row.Code) == "":
			return schemaError(name, i, "account code")
		}
	}
	return nil
}

func schemaError(table string, row int, field string) error {
	return apperrors.NewSchemaError(
		fmt.Sprintf("required field %s missing", field), nil).
		WithContext("table", table).
		WithContext("row", row)
}

// scaledRows applies the table-level unit factor, normalizing every
// value to the thousands-denominated base unit. The input rows are
// copied, never modified.
func scaledRows(table *domain.RawTable) []domain.RawLineItem {
	if table == nil || len(table.Rows) == 0 {
		return nil
	}
	factor, _ := table.Unit.Factor()
	rows := make([]domain.RawLineItem, len(table.Rows))
	for i, row := range table.Rows {
		row.Value *= factor
		rows[i] = row
	}
	return rows
}

// assemble pivots the final quarterly matrix into the canonical
// output table: one row per chart account in chart order, one column
// per period in chronological order, blanks where nothing resolved.
func assemble(input Input, profile sector.Profile, c *chart.Chart, isolated *QuarterlyMatrix) *domain.StatementTable {
	periods := make([]domain.PeriodKey, len(isolated.Periods))
	copy(periods, isolated.Periods)

	rows := make([]domain.StatementRow, 0, len(c.Accounts))
	for _, account := range c.Accounts {
		cells := make([]domain.Amount, len(periods))
		for i, p := range periods {
			cells[i] = isolated.At(account.Slug, p)
		}
		rows = append(rows, domain.StatementRow{
			Code:  account.Slug,
			Label: account.Label,
			Cells: cells,
		})
	}

	return &domain.StatementTable{
		Ticker:  strings.ToUpper(strings.TrimSpace(input.Ticker)),
		Kind:    input.Kind,
		Profile: string(profile),
		Periods: periods,
		Rows:    rows,
	}
}
