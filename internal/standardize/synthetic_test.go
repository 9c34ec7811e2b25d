package standardize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvmstd/internal/chart"
	"cvmstd/pkg/contracts/domain"
)

func operatingBranch() *chart.SyntheticSpec {
	return &chart.SyntheticSpec{Branch: "6.01"}
}

func TestExtractSynthetic_CombinedRowsOnly(t *testing.T) {
	// A combined depreciation-and-amortization row exists, so the
	// single-term rows are left out to avoid double counting.
	rows := []domain.RawLineItem{
		row("6.01.01.02", "Depreciação e Amortização", 120),
		row("6.01.01.03", "Depreciação", 80),
		row("6.01.01.04", "Amortização de Intangíveis", 40),
	}

	got := ExtractSynthetic(operatingBranch(), rows)
	require.True(t, got.Valid)
	assert.Equal(t, 120.0, got.Float64)
}

func TestExtractSynthetic_MultipleCombinedRowsSummed(t *testing.T) {
	rows := []domain.RawLineItem{
		row("6.01.01.02", "Depreciação e Amortização", 120),
		row("6.01.01.05", "Depreciações e Amortizações de Arrendamento", 30),
	}

	got := ExtractSynthetic(operatingBranch(), rows)
	require.True(t, got.Valid)
	assert.Equal(t, 150.0, got.Float64)
}

func TestExtractSynthetic_SingleStemFallback(t *testing.T) {
	rows := []domain.RawLineItem{
		row("6.01.01.03", "Depreciação", 80),
		row("6.01.01.04", "Amortização de Intangíveis", 40),
		row("6.01.01.05", "Provisões", 15),
	}

	got := ExtractSynthetic(operatingBranch(), rows)
	require.True(t, got.Valid)
	assert.Equal(t, 120.0, got.Float64)
}

func TestExtractSynthetic_BranchRestriction(t *testing.T) {
	// Amortization of borrowings under financing activities must not
	// leak into the operating figure.
	rows := []domain.RawLineItem{
		row("6.01.01.03", "Depreciação", 80),
		row("6.03.02", "Amortização de Empréstimos", -500),
	}

	got := ExtractSynthetic(operatingBranch(), rows)
	require.True(t, got.Valid)
	assert.Equal(t, 80.0, got.Float64)
}

func TestExtractSynthetic_NoMatchesIsMissing(t *testing.T) {
	rows := []domain.RawLineItem{
		row("6.01.01.01", "Provisões e Ajustes", 25),
		row("6.01.02", "Variações nos Ativos", -10),
	}

	got := ExtractSynthetic(operatingBranch(), rows)
	assert.False(t, got.Valid)
}

func TestExtractSynthetic_NormalizesAccents(t *testing.T) {
	// Filings write the terms with and without diacritics; both forms
	// must hit the same stems.
	rows := []domain.RawLineItem{
		row("6.01.01.02", "DEPRECIACAO E AMORTIZACAO", 200),
	}

	got := ExtractSynthetic(operatingBranch(), rows)
	require.True(t, got.Valid)
	assert.Equal(t, 200.0, got.Float64)
}
