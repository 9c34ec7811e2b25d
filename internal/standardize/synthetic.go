package standardize

import (
	"strings"

	"cvmstd/internal/chart"
	"cvmstd/internal/textnorm"
	"cvmstd/pkg/contracts/domain"
)

// Stems matched against normalized row descriptions. "deprecia"
// covers depreciação and its inflections, "amortiza" likewise.
const (
	depreciationStem = "deprecia"
	amortizationStem = "amortiza"
)

// ExtractSynthetic captures the combined depreciation and
// amortization figure from one period's rows under the configured
// branch. When any row mentions both stems, only those combined rows
// are summed; single-stem rows are ignored then to avoid counting the
// same charge twice. With no combined rows, all single-stem rows are
// summed instead. No matching rows means missing.
func ExtractSynthetic(spec *chart.SyntheticSpec, rows []domain.RawLineItem) domain.Amount {
	prefix := spec.Branch + "."

	combined := 0.0
	combinedFound := false
	single := 0.0
	singleFound := false

	for _, row := range rows {
		if !strings.HasPrefix(row.Code, prefix) {
			continue
		}
		text := textnorm.Normalize(row.Description)
		hasDepreciation := strings.Contains(text, depreciationStem)
		hasAmortization := strings.Contains(text, amortizationStem)
		switch {
		case hasDepreciation && hasAmortization:
			combined += row.Value
			combinedFound = true
		case hasDepreciation || hasAmortization:
			single += row.Value
			singleFound = true
		}
	}

	if combinedFound {
		return domain.AmountOf(combined)
	}
	if singleFound {
		return domain.AmountOf(single)
	}
	return domain.Missing()
}
