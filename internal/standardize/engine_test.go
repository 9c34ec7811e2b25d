package standardize

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cvmstd/internal/errors"
	"cvmstd/internal/sector"
	"cvmstd/pkg/contracts/domain"
)

func quarterlyTable(rows ...domain.RawLineItem) *domain.RawTable {
	return &domain.RawTable{Kind: domain.SourceQuarterly, Unit: domain.UnitThousands, Rows: rows}
}

func annualTable(rows ...domain.RawLineItem) *domain.RawTable {
	return &domain.RawTable{Kind: domain.SourceAnnual, Unit: domain.UnitThousands, Rows: rows}
}

func cellValues(t *testing.T, table *domain.StatementTable, code string) []domain.Amount {
	t.Helper()
	for _, row := range table.Rows {
		if row.Code == code {
			return row.Cells
		}
	}
	t.Fatalf("account %q not in table", code)
	return nil
}

func TestEngine_Run_IncomeStandard(t *testing.T) {
	engine := New(nil)
	input := Input{
		Ticker: " petr4 ",
		Kind:   domain.StatementIncome,
		Quarterly: quarterlyTable(
			item(2023, 1, "3.01", "Receita de Venda de Bens e/ou Serviços", 100),
			item(2023, 2, "3.01", "Receita de Venda de Bens e/ou Serviços", 220),
			item(2023, 3, "3.01", "Receita de Venda de Bens e/ou Serviços", 360),
		),
		Annual: annualTable(
			item(2023, 4, "3.01", "Receita de Venda de Bens e/ou Serviços", 500),
		),
	}

	table, err := engine.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "PETR4", table.Ticker)
	assert.Equal(t, domain.StatementIncome, table.Kind)
	assert.Equal(t, "standard", table.Profile)
	assert.Len(t, table.Rows, 11)
	assert.Equal(t, []domain.PeriodKey{
		period(2023, 1), period(2023, 2), period(2023, 3), period(2023, 4),
	}, table.Periods)
	assert.Equal(t, []string{
		"canonical_code", "canonical_label", "2023-T1", "2023-T2", "2023-T3", "2023-T4",
	}, table.Header())

	// Q1 through Q3 from cumulative differencing, Q4 from the annual
	// figure minus the isolated quarters: 500 - (100+120+140) = 140.
	want := []domain.Amount{
		domain.AmountOf(100), domain.AmountOf(120), domain.AmountOf(140), domain.AmountOf(140),
	}
	assert.Equal(t, want, cellValues(t, table, "receita_liquida"))

	// Gross profit resolves through the composite alternative
	// 3.01+3.02 where absent costs contribute zero.
	assert.Equal(t, want, cellValues(t, table, "lucro_bruto"))

	for _, cell := range cellValues(t, table, "custos") {
		assert.False(t, cell.Valid)
	}

	// EPS reports a true zero when the filer has no 3.99 branch at all.
	for _, cell := range cellValues(t, table, "lucro_por_acao") {
		require.True(t, cell.Valid)
		assert.Equal(t, 0.0, cell.Float64)
	}
}

func TestEngine_Run_Q4MissingWithoutAnnual(t *testing.T) {
	engine := New(nil)
	input := Input{
		Ticker: "PETR4",
		Kind:   domain.StatementIncome,
		Quarterly: quarterlyTable(
			item(2023, 1, "3.01", "Receita", 100),
			item(2023, 2, "3.01", "Receita", 220),
			item(2023, 3, "3.01", "Receita", 360),
		),
	}

	table, err := engine.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []domain.PeriodKey{
		period(2023, 1), period(2023, 2), period(2023, 3),
	}, table.Periods)
	assert.Equal(t, domain.AmountOf(140), table.Cell("receita_liquida", period(2023, 3)))
}

func TestEngine_Run_CashFlow(t *testing.T) {
	engine := New(nil)
	input := Input{
		Ticker: "PETR4",
		Kind:   domain.StatementCashFlow,
		Quarterly: quarterlyTable(
			item(2023, 1, "6.01", "Caixa Líquido Atividades Operacionais", 100),
			item(2023, 1, "6.01.02", "Depreciação e Amortização", 30),
			item(2023, 1, "6.02", "Caixa Líquido Atividades de Investimento", -40),
			item(2023, 1, "6.03", "Caixa Líquido Atividades de Financiamento", -10),
			item(2023, 1, "6.04", "Variação Cambial s/ Caixa e Equivalentes", 2),
			item(2023, 1, "6.05", "Aumento (Redução) de Caixa e Equivalentes", 52),
			item(2023, 1, "6.05.01", "Saldo Inicial de Caixa e Equivalentes", 500),
			item(2023, 1, "6.05.02", "Saldo Final de Caixa e Equivalentes", 552),

			item(2023, 2, "6.01", "Caixa Líquido Atividades Operacionais", 220),
			item(2023, 2, "6.01.02", "Depreciação e Amortização", 65),
			item(2023, 2, "6.02", "Caixa Líquido Atividades de Investimento", -90),
			item(2023, 2, "6.03", "Caixa Líquido Atividades de Financiamento", -15),
			item(2023, 2, "6.04", "Variação Cambial s/ Caixa e Equivalentes", 5),
			item(2023, 2, "6.05", "Aumento (Redução) de Caixa e Equivalentes", 120),
			item(2023, 2, "6.05.01", "Saldo Inicial de Caixa e Equivalentes", 500),
			item(2023, 2, "6.05.02", "Saldo Final de Caixa e Equivalentes", 620),
		),
	}

	table, err := engine.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "standard", table.Profile)
	assert.Len(t, table.Rows, 8)

	tests := []struct {
		code string
		want []domain.Amount
	}{
		{"caixa_operacional", []domain.Amount{domain.AmountOf(100), domain.AmountOf(120)}},
		{"depreciacao_amortizacao", []domain.Amount{domain.AmountOf(30), domain.AmountOf(35)}},
		{"caixa_investimento", []domain.Amount{domain.AmountOf(-40), domain.AmountOf(-50)}},
		{"caixa_financiamento", []domain.Amount{domain.AmountOf(-10), domain.AmountOf(-5)}},
		{"variacao_cambial", []domain.Amount{domain.AmountOf(2), domain.AmountOf(3)}},
		{"variacao_caixa", []domain.Amount{domain.AmountOf(52), domain.AmountOf(68)}},
		// Opening balance in Q2 is the closing balance as of Q1, not
		// the year-start figure the filing repeats every quarter.
		{"caixa_inicial", []domain.Amount{domain.AmountOf(500), domain.AmountOf(552)}},
		{"caixa_final", []domain.Amount{domain.AmountOf(552), domain.AmountOf(620)}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cellValues(t, table, tt.code), "account %s", tt.code)
	}
}

func TestEngine_Run_DerivedNetChange(t *testing.T) {
	// No 6.05 rows at all: the net change is reconstructed from the
	// three activity totals.
	engine := New(nil)
	input := Input{
		Ticker: "PETR4",
		Kind:   domain.StatementCashFlow,
		Quarterly: quarterlyTable(
			item(2023, 1, "6.01", "Caixa Operacional", 100),
			item(2023, 1, "6.02", "Caixa Investimento", -40),
			item(2023, 1, "6.03", "Caixa Financiamento", -10),
		),
	}

	table, err := engine.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, domain.AmountOf(50), table.Cell("variacao_caixa", period(2023, 1)))
	assert.False(t, table.Cell("variacao_cambial", period(2023, 1)).Valid)
	assert.False(t, table.Cell("caixa_inicial", period(2023, 1)).Valid)
	assert.False(t, table.Cell("caixa_final", period(2023, 1)).Valid)
}

func TestEngine_Run_InsuranceProfile(t *testing.T) {
	engine := New(nil)
	input := Input{
		Ticker: "BBSE3",
		Kind:   domain.StatementIncome,
		Quarterly: quarterlyTable(
			item(2023, 1, "3.01.01", "Prêmios Ganhos", 700),
			item(2023, 1, "3.01.02", "Prêmios de Resseguros Cedidos", -100),
			item(2023, 1, "3.02.01", "Sinistros Ocorridos", -300),
			item(2023, 1, "3.02.02", "Sinistros - Recuperação com Resseguro", 50),
		),
	}

	table, err := engine.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "insurance", table.Profile)
	assert.Len(t, table.Rows, 8)
	assert.Equal(t, domain.AmountOf(700), table.Cell("premios_ganhos", period(2023, 1)))
	assert.Equal(t, domain.AmountOf(-300), table.Cell("sinistros", period(2023, 1)))
}

func TestEngine_Run_SegmentTableClassification(t *testing.T) {
	engine := New(nil)
	input := Input{
		Ticker:  "XPTO3",
		Kind:    domain.StatementIncome,
		Sectors: sector.NewTable(map[string]string{"XPTO3": "Bancos"}),
		Quarterly: quarterlyTable(
			item(2023, 1, "3.01", "Receitas da Intermediação Financeira", 900),
		),
	}

	table, err := engine.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "banking", table.Profile)
	assert.Equal(t, "receita_intermediacao", table.Rows[0].Code)
	assert.Equal(t, domain.AmountOf(900), table.Cell("receita_intermediacao", period(2023, 1)))
}

func TestEngine_Run_UnitScaling(t *testing.T) {
	tests := []struct {
		name string
		unit domain.Unit
		raw  float64
		want float64
	}{
		{"thousands pass through", domain.UnitThousands, 250, 250},
		{"units scale up", domain.UnitUnits, 2, 2000},
		{"millions scale down", domain.UnitMillions, 2000, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(nil)
			input := Input{
				Ticker: "PETR4",
				Kind:   domain.StatementIncome,
				Quarterly: &domain.RawTable{
					Kind: domain.SourceQuarterly,
					Unit: tt.unit,
					Rows: []domain.RawLineItem{item(2023, 1, "3.01", "Receita", tt.raw)},
				},
			}

			table, err := engine.Run(context.Background(), input)
			require.NoError(t, err)
			assert.Equal(t, domain.AmountOf(tt.want), table.Cell("receita_liquida", period(2023, 1)))
		})
	}
}

func TestEngine_Run_UnknownUnit(t *testing.T) {
	engine := New(nil)
	input := Input{
		Ticker: "PETR4",
		Kind:   domain.StatementIncome,
		Quarterly: &domain.RawTable{
			Kind: domain.SourceQuarterly,
			Unit: domain.Unit("bilhoes"),
			Rows: []domain.RawLineItem{item(2023, 1, "3.01", "Receita", 100)},
		},
	}

	_, err := engine.Run(context.Background(), input)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeUnit, appErr.Type)
	assert.Equal(t, "quarterly", appErr.Context["table"])
}

func TestEngine_Run_SchemaViolations(t *testing.T) {
	valid := item(2023, 1, "3.01", "Receita", 100)

	tests := []struct {
		name string
		row  domain.RawLineItem
	}{
		{"empty code", func() domain.RawLineItem { r := valid; r.Code = "  "; return r }()},
		{"zero end date", func() domain.RawLineItem { r := valid; r.EndDate = time.Time{}; return r }()},
		{"quarter below range", func() domain.RawLineItem { r := valid; r.Quarter = 0; return r }()},
		{"quarter above range", func() domain.RawLineItem { r := valid; r.Quarter = 5; return r }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(nil)
			input := Input{
				Ticker:    "PETR4",
				Kind:      domain.StatementIncome,
				Quarterly: quarterlyTable(valid, tt.row),
			}

			_, err := engine.Run(context.Background(), input)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrTypeSchema, appErr.Type)
			assert.Equal(t, 1, appErr.Context["row"])
		})
	}
}

func TestEngine_Run_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{"empty ticker", Input{Ticker: "   ", Kind: domain.StatementIncome}},
		{"unknown statement kind", Input{Ticker: "PETR4", Kind: domain.StatementKind("balance")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(nil)
			_, err := engine.Run(context.Background(), tt.input)
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
		})
	}
}

func TestEngine_Run_DoesNotModifyInputs(t *testing.T) {
	engine := New(nil)
	quarterly := &domain.RawTable{
		Kind: domain.SourceQuarterly,
		Unit: domain.UnitMillions,
		Rows: []domain.RawLineItem{item(2023, 1, "3.01", "Receita", 2000)},
	}
	input := Input{Ticker: "PETR4", Kind: domain.StatementIncome, Quarterly: quarterly}

	_, err := engine.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, quarterly.Rows[0].Value)
}

func TestEngine_Run_NoRows(t *testing.T) {
	engine := New(nil)
	input := Input{Ticker: "petr4", Kind: domain.StatementIncome}

	table, err := engine.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "PETR4", table.Ticker)
	assert.Empty(t, table.Periods)
	assert.Len(t, table.Rows, 11)
	for _, row := range table.Rows {
		assert.Empty(t, row.Cells)
	}
}
