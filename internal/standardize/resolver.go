package standardize

import (
	"strings"

	"cvmstd/internal/chart"
	"cvmstd/pkg/contracts/domain"
)

// Resolve evaluates a parsed account mapping expression against one
// period's raw rows. It is a pure function: rows are never modified
// and the same inputs always produce the same amount.
//
// Fallback terms are tried in order and the first resolved one wins.
// A sum is missing only when every addend is missing; once any addend
// resolves, still-missing addends count as zero. A literal code tries
// an exact match first and hierarchical rollup second.
func Resolve(expr chart.Expr, rows []domain.RawLineItem) domain.Amount {
	switch node := expr.(type) {
	case nil:
		return domain.Missing()
	case chart.Literal:
		return resolveCode(node.Code, rows)
	case chart.Sum:
		total := 0.0
		resolved := false
		for _, term := range node.Terms {
			if value := Resolve(term, rows); value.Valid {
				total += value.Float64
				resolved = true
			}
		}
		if !resolved {
			return domain.Missing()
		}
		return domain.AmountOf(total)
	case chart.Fallback:
		for _, term := range node.Terms {
			if value := Resolve(term, rows); value.Valid {
				return value
			}
		}
		return domain.Missing()
	}
	return domain.Missing()
}

// resolveCode resolves a single account code. Exact match takes
// precedence over rollup; on duplicate codes the last row in source
// order wins.
func resolveCode(code string, rows []domain.RawLineItem) domain.Amount {
	var value float64
	found := false
	for _, row := range rows {
		if row.Code == code {
			value = row.Value
			found = true
		}
	}
	if found {
		return domain.AmountOf(value)
	}
	return rollup(code, rows)
}

// rollup sums every row whose code is a strict dotted-prefix
// descendant of the candidate. The separator is required, so "1.1"
// aggregates "1.1.01" but never the sibling "1.10".
func rollup(code string, rows []domain.RawLineItem) domain.Amount {
	prefix := code + "."
	sum := 0.0
	found := false
	for _, row := range rows {
		if strings.HasPrefix(row.Code, prefix) {
			sum += row.Value
			found = true
		}
	}
	if !found {
		return domain.Missing()
	}
	return domain.AmountOf(sum)
}
