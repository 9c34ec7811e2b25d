package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvmstd/internal/config"
	"cvmstd/pkg/contracts/domain"
)

func incomeTable() *domain.StatementTable {
	return &domain.StatementTable{
		Ticker:  "PETR4",
		Kind:    domain.StatementIncome,
		Profile: "standard",
		Periods: []domain.PeriodKey{
			{Year: 2023, Quarter: 1},
			{Year: 2023, Quarter: 2},
		},
		Rows: []domain.StatementRow{
			{
				Code:  "receita_liquida",
				Label: "Receita Líquida",
				Cells: []domain.Amount{domain.AmountOf(100), domain.AmountOf(120)},
			},
			{
				Code:  "custos",
				Label: "Custo dos Bens e/ou Serviços Vendidos",
				Cells: []domain.Amount{domain.Missing(), domain.AmountOf(-40)},
			},
		},
	}
}

func TestStatementExporter_ExportStatement(t *testing.T) {
	paths := &config.Paths{OutputDir: t.TempDir()}
	exp := NewStatementExporter(paths)

	written, err := exp.ExportStatement(incomeTable())
	require.NoError(t, err)
	assert.Equal(t, paths.StatementCSVPath("PETR4", "income"), written)

	content, err := os.ReadFile(written)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "canonical_code,canonical_label,2023-T1,2023-T2", lines[0])
	assert.Equal(t, "receita_liquida,Receita Líquida,100.00,120.00", lines[1])
	// Missing cells are blank, never zero.
	assert.Equal(t, "custos,Custo dos Bens e/ou Serviços Vendidos,,-40.00", lines[2])
}

func TestStatementExporter_ExportLong(t *testing.T) {
	paths := &config.Paths{OutputDir: t.TempDir()}
	exp := NewStatementExporter(paths)

	cashflow := &domain.StatementTable{
		Ticker:  "VALE3",
		Kind:    domain.StatementCashFlow,
		Profile: "standard",
		Periods: []domain.PeriodKey{{Year: 2023, Quarter: 1}},
		Rows: []domain.StatementRow{
			{
				Code:  "caixa_operacional",
				Label: "Caixa Líquido das Atividades Operacionais",
				Cells: []domain.Amount{domain.AmountOf(250)},
			},
		},
	}

	err := exp.ExportLong([]*domain.StatementTable{incomeTable(), cashflow}, "standardized_long.csv")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(paths.OutputDir, "standardized_long.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
	// Header, three resolved income cells, one cashflow cell; the
	// missing Q1 custos cell is not emitted.
	require.Len(t, lines, 5)
	assert.Equal(t, "ticker,statement,profile,canonical_code,canonical_label,period,value", lines[0])
	assert.Equal(t, "PETR4,income,standard,receita_liquida,Receita Líquida,2023-T1,100.00", lines[1])
	assert.Equal(t, "VALE3,cashflow,standard,caixa_operacional,Caixa Líquido das Atividades Operacionais,2023-T1,250.00", lines[4])
}
