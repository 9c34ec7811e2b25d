package standardize

import (
	"math"
	"strings"

	"cvmstd/internal/chart"
	"cvmstd/pkg/contracts/domain"
)

// ResolveScalar resolves a non-differenced per-share account for one
// period. The prioritized codes are tried in order with exact matches
// only (rollup would sum share classes); codes resolving to zero or
// missing are skipped. When every prioritized code is exhausted the
// result is the single non-zero reported value of largest magnitude
// among the rows under the account's branch, and zero when no such
// row exists.
func ResolveScalar(spec *chart.ScalarSpec, rows []domain.RawLineItem) domain.Amount {
	for _, code := range spec.Priority {
		var value float64
		found := false
		for _, row := range rows {
			if row.Code == code {
				value = row.Value
				found = true
			}
		}
		if found && value != 0 {
			return domain.AmountOf(value)
		}
	}

	prefix := spec.Branch + "."
	var best float64
	found := false
	for _, row := range rows {
		if !strings.HasPrefix(row.Code, prefix) {
			continue
		}
		if row.Value == 0 {
			continue
		}
		if !found || math.Abs(row.Value) > math.Abs(best) {
			best = row.Value
			found = true
		}
	}
	if found {
		return domain.AmountOf(best)
	}
	return domain.AmountOf(0)
}
