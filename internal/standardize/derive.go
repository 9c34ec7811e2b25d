package standardize

import (
	"cvmstd/internal/chart"
	"cvmstd/pkg/contracts/domain"
)

// FillDerived runs the one-hop derived fill over the isolated matrix
// and returns a new matrix; the input is left untouched. A target is
// filled with the sum of its sources only when it is still missing
// after isolation and every source is present. Sources are read from
// the pre-fill state, so a value filled in this pass never feeds
// another target and already-resolved values are never overwritten.
func FillDerived(c *chart.Chart, isolated *QuarterlyMatrix) *QuarterlyMatrix {
	filled := isolated.clone()
	for i := range c.Accounts {
		account := &c.Accounts[i]
		if len(account.DerivedFrom) == 0 {
			continue
		}
		for _, p := range isolated.Periods {
			if isolated.At(account.Slug, p).Valid {
				continue
			}
			total := 0.0
			complete := true
			for _, source := range account.DerivedFrom {
				value := isolated.At(source, p)
				if !value.Valid {
					complete = false
					break
				}
				total += value.Float64
			}
			if complete {
				filled.set(account.Slug, p, domain.AmountOf(total))
			}
		}
	}
	return filled
}
