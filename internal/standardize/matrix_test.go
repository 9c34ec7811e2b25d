package standardize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvmstd/internal/chart"
	"cvmstd/pkg/contracts/domain"
)

func quarterEnd(year, quarter int) time.Time {
	switch quarter {
	case 1:
		return time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC)
	case 2:
		return time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC)
	case 3:
		return time.Date(year, time.September, 30, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
}

// item builds one raw line item for multi-period fixtures.
func item(year, quarter int, code, description string, value float64) domain.RawLineItem {
	return domain.RawLineItem{
		EndDate:     quarterEnd(year, quarter),
		Quarter:     quarter,
		Code:        code,
		Description: description,
		Value:       value,
	}
}

func period(year, quarter int) domain.PeriodKey {
	return domain.PeriodKey{Year: year, Quarter: quarter}
}

// revenueOnly is a one-account chart for matrix mechanics tests.
func revenueOnly() *chart.Chart {
	return &chart.Chart{
		Name:     "test-income",
		Q4Policy: chart.Q4AnnualMinusSum,
		Accounts: []chart.Account{
			{Slug: "receita_liquida", Label: "Receita Líquida", Kind: chart.Flow, Expr: chart.Parse("3.01")},
		},
	}
}

func TestBuildPeriodMatrix_PeriodEnumeration(t *testing.T) {
	quarterly := []domain.RawLineItem{
		item(2023, 1, "3.01", "Receita", 100),
		item(2023, 2, "3.01", "Receita", 220),
	}
	annual := []domain.RawLineItem{
		item(2022, 4, "3.01", "Receita", 480),
		item(2023, 4, "3.01", "Receita", 500),
	}

	matrix := BuildPeriodMatrix(revenueOnly(), quarterly, annual)

	// Chronological, with annual-only years contributing their Q4 and
	// nothing else; no phantom periods in between.
	expected := []domain.PeriodKey{
		period(2022, 4),
		period(2023, 1),
		period(2023, 2),
		period(2023, 4),
	}
	assert.Equal(t, expected, matrix.Periods)
}

func TestBuildPeriodMatrix_Q4PrefersAnnualSource(t *testing.T) {
	quarterly := []domain.RawLineItem{
		item(2023, 4, "3.01", "Receita", 550),
	}
	annual := []domain.RawLineItem{
		item(2023, 4, "3.01", "Receita", 500),
	}

	matrix := BuildPeriodMatrix(revenueOnly(), quarterly, annual)

	got := matrix.At("receita_liquida", period(2023, 4))
	require.True(t, got.Valid)
	assert.Equal(t, 500.0, got.Float64)
}

func TestBuildPeriodMatrix_Q4FallsBackToQuarterly(t *testing.T) {
	quarterly := []domain.RawLineItem{
		item(2023, 4, "3.01", "Receita", 550),
	}

	matrix := BuildPeriodMatrix(revenueOnly(), quarterly, nil)

	got := matrix.At("receita_liquida", period(2023, 4))
	require.True(t, got.Valid)
	assert.Equal(t, 550.0, got.Float64)
}

func TestBuildPeriodMatrix_MissingMarkerWhenUnresolved(t *testing.T) {
	// The period exists because other rows are present, but the
	// account itself has nothing to resolve from.
	quarterly := []domain.RawLineItem{
		item(2023, 1, "9.87", "Conta Exótica", 42),
	}

	matrix := BuildPeriodMatrix(revenueOnly(), quarterly, nil)

	require.Equal(t, []domain.PeriodKey{period(2023, 1)}, matrix.Periods)
	assert.False(t, matrix.At("receita_liquida", period(2023, 1)).Valid)
}

func TestBuildPeriodMatrix_NoRowsNoPeriods(t *testing.T) {
	matrix := BuildPeriodMatrix(revenueOnly(), nil, nil)
	assert.Empty(t, matrix.Periods)
}

func TestBuildPeriodMatrix_DispatchesPerMechanism(t *testing.T) {
	c := &chart.Chart{
		Name:     "test-mixed",
		Q4Policy: chart.Q4Differencing,
		Accounts: []chart.Account{
			{Slug: "plain", Kind: chart.Flow, Expr: chart.Parse("6.01")},
			{Slug: "hybrid", Kind: chart.Flow, Hybrid: &chart.HybridSpec{Include: []string{"sinistro"}}},
			{Slug: "scalar", Kind: chart.Scalar, Scalar: &chart.ScalarSpec{Priority: []string{"3.99"}, Branch: "3.99"}},
			{Slug: "synthetic", Kind: chart.Flow, Synthetic: &chart.SyntheticSpec{Branch: "6.01"}},
		},
	}
	quarterly := []domain.RawLineItem{
		item(2023, 1, "6.01", "Caixa Operacional", 500),
		item(2023, 1, "6.01.01.02", "Depreciação e Amortização", 120),
		item(2023, 1, "3.05.01", "Sinistros Retidos", -300),
		item(2023, 1, "3.99", "Lucro por Ação", 1.23),
	}

	matrix := BuildPeriodMatrix(c, quarterly, nil)

	p := period(2023, 1)
	assert.Equal(t, 500.0, matrix.At("plain", p).Float64)
	assert.Equal(t, -300.0, matrix.At("hybrid", p).Float64)
	assert.Equal(t, 1.23, matrix.At("scalar", p).Float64)
	assert.Equal(t, 120.0, matrix.At("synthetic", p).Float64)
}

func TestPeriodIndex_AnnualRowsAlwaysBackQ4(t *testing.T) {
	// Annual filings are labeled Q4 by the loaders, but the index
	// keys them by year alone.
	annual := []domain.RawLineItem{
		{
			EndDate: quarterEnd(2023, 4),
			Quarter: 4,
			Code:    "3.01",
			Value:   500,
		},
	}
	index := newPeriodIndex(nil, annual)

	slice := index.sliceFor(period(2023, 4))
	require.Len(t, slice, 1)
	assert.Equal(t, 500.0, slice[0].Value)

	assert.Empty(t, index.sliceFor(period(2023, 1)))
}

func TestMatrix_AtDefaultsToMissing(t *testing.T) {
	matrix := newPeriodMatrix([]domain.PeriodKey{period(2023, 1)})
	assert.False(t, matrix.At("receita_liquida", period(2023, 1)).Valid)

	quarterlyMatrix := newQuarterlyMatrix(nil)
	assert.False(t, quarterlyMatrix.At("receita_liquida", period(2023, 1)).Valid)
}
