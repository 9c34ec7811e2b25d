package standardize

import (
	"cvmstd/internal/chart"
	"cvmstd/pkg/contracts/domain"
)

// Isolate converts the cumulative matrix into true single-quarter
// values. Each year is handled independently; each account follows
// its isolation kind, with the chart's Q4 policy deciding how the
// fourth quarter of flow accounts is built.
func Isolate(c *chart.Chart, cumulative *PeriodMatrix) *QuarterlyMatrix {
	isolated := newQuarterlyMatrix(cumulative.Periods)
	for i := range c.Accounts {
		account := &c.Accounts[i]
		for _, p := range cumulative.Periods {
			isolated.set(account.Slug, p, isolateCell(c.Q4Policy, account, cumulative, p))
		}
	}
	return isolated
}

func isolateCell(policy chart.Q4Policy, account *chart.Account, cumulative *PeriodMatrix, p domain.PeriodKey) domain.Amount {
	switch account.Kind {
	case chart.ClosingStock, chart.Scalar:
		// Point-in-time balances and per-period scalars pass through.
		return cumulative.At(account.Slug, p)
	case chart.OpeningStock:
		if p.Quarter == 1 {
			return cumulative.At(account.Slug, p)
		}
		prev, ok := p.Prev()
		if !ok {
			return domain.Missing()
		}
		// One-quarter lag sourced from the paired closing account.
		return cumulative.At(account.PairedClosing, prev)
	default:
		return isolateFlow(policy, account.Slug, cumulative, p)
	}
}

// isolateFlow differences cumulative values into one quarter's flow.
// Q1 is the cumulative itself. Under the annual-minus-sum policy Q4
// is the annual cumulative minus the isolated first three quarters
// and requires all four operands; every other case is cumulative Qn
// minus cumulative Q(n-1), missing unless both are present.
func isolateFlow(policy chart.Q4Policy, slug string, cumulative *PeriodMatrix, p domain.PeriodKey) domain.Amount {
	current := cumulative.At(slug, p)
	if p.Quarter == 1 {
		return current
	}

	if p.Quarter == 4 && policy == chart.Q4AnnualMinusSum {
		if !current.Valid {
			return domain.Missing()
		}
		total := 0.0
		for quarter := 1; quarter <= 3; quarter++ {
			previous := isolateFlow(policy, slug, cumulative, domain.PeriodKey{Year: p.Year, Quarter: quarter})
			if !previous.Valid {
				return domain.Missing()
			}
			total += previous.Float64
		}
		return domain.AmountOf(current.Float64 - total)
	}

	prev := domain.PeriodKey{Year: p.Year, Quarter: p.Quarter - 1}
	return current.Sub(cumulative.At(slug, prev))
}
