package standardize

import (
	"cvmstd/internal/chart"
	"cvmstd/internal/textnorm"
	"cvmstd/pkg/contracts/domain"
)

// strategy resolves one period's rows to an amount. Strategies are
// composed with firstSuccess so each step runs only when the previous
// produced nothing.
type strategy func(rows []domain.RawLineItem) domain.Amount

func firstSuccess(strategies ...strategy) strategy {
	return func(rows []domain.RawLineItem) domain.Amount {
		for _, s := range strategies {
			if value := s(rows); value.Valid {
				return value
			}
		}
		return domain.Missing()
	}
}

// ResolveHybrid resolves a sector-specific account: exact code match
// first, keyword search over normalized descriptions second, the
// composite fallback expression last.
func ResolveHybrid(spec *chart.HybridSpec, rows []domain.RawLineItem) domain.Amount {
	return firstSuccess(
		exactCodeStrategy(spec.Code),
		keywordStrategy(spec.Include, spec.Exclude),
		exprStrategy(spec.Fallback),
	)(rows)
}

// exactCodeStrategy matches the configured plain code exactly, with
// no rollup. Last row wins on duplicates, matching the resolver.
func exactCodeStrategy(code string) strategy {
	return func(rows []domain.RawLineItem) domain.Amount {
		if code == "" {
			return domain.Missing()
		}
		var value float64
		found := false
		for _, row := range rows {
			if row.Code == code {
				value = row.Value
				found = true
			}
		}
		if !found {
			return domain.Missing()
		}
		return domain.AmountOf(value)
	}
}

// keywordStrategy sums rows whose normalized description contains any
// include keyword and none of the exclude keywords. Normalization is
// lowercase with diacritics stripped and is used for containment only.
func keywordStrategy(include, exclude []string) strategy {
	return func(rows []domain.RawLineItem) domain.Amount {
		if len(include) == 0 {
			return domain.Missing()
		}
		sum := 0.0
		found := false
		for _, row := range rows {
			text := textnorm.Normalize(row.Description)
			if !textnorm.ContainsAny(text, include) {
				continue
			}
			if textnorm.ContainsAny(text, exclude) {
				continue
			}
			sum += row.Value
			found = true
		}
		if !found {
			return domain.Missing()
		}
		return domain.AmountOf(sum)
	}
}

func exprStrategy(expr chart.Expr) strategy {
	return func(rows []domain.RawLineItem) domain.Amount {
		return Resolve(expr, rows)
	}
}
