package exporter

import (
	"fmt"

	"cvmstd/pkg/contracts/domain"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	// Always format with exactly 2 decimal places for consistency
	// This ensures values like 13.4 appear as 13.40 in CSV
	return fmt.Sprintf("%.2f", f)
}

// formatAmount renders a cell: resolved values with two decimals,
// missing values as an empty field.
func formatAmount(a domain.Amount) string {
	if !a.Valid {
		return ""
	}
	return formatFloat(a.Float64)
}
