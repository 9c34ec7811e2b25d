package standardize

import (
	"cvmstd/internal/chart"
	"cvmstd/pkg/contracts/domain"
)

// PeriodMatrix is the dense canonical-account × period matrix of
// cumulative values for one run. Built once, read-only afterwards.
type PeriodMatrix struct {
	Periods []domain.PeriodKey
	cells   map[string]map[domain.PeriodKey]domain.Amount
}

func newPeriodMatrix(periods []domain.PeriodKey) *PeriodMatrix {
	return &PeriodMatrix{
		Periods: periods,
		cells:   make(map[string]map[domain.PeriodKey]domain.Amount),
	}
}

func (m *PeriodMatrix) set(slug string, p domain.PeriodKey, value domain.Amount) {
	row, ok := m.cells[slug]
	if !ok {
		row = make(map[domain.PeriodKey]domain.Amount, len(m.Periods))
		m.cells[slug] = row
	}
	row[p] = value
}

// At returns the cumulative value for an account at one period,
// missing when nothing was resolved there.
func (m *PeriodMatrix) At(slug string, p domain.PeriodKey) domain.Amount {
	return m.cells[slug][p]
}

// QuarterlyMatrix holds isolated single-quarter values, same shape as
// PeriodMatrix.
type QuarterlyMatrix struct {
	Periods []domain.PeriodKey
	cells   map[string]map[domain.PeriodKey]domain.Amount
}

func newQuarterlyMatrix(periods []domain.PeriodKey) *QuarterlyMatrix {
	return &QuarterlyMatrix{
		Periods: periods,
		cells:   make(map[string]map[domain.PeriodKey]domain.Amount),
	}
}

func (m *QuarterlyMatrix) set(slug string, p domain.PeriodKey, value domain.Amount) {
	row, ok := m.cells[slug]
	if !ok {
		row = make(map[domain.PeriodKey]domain.Amount, len(m.Periods))
		m.cells[slug] = row
	}
	row[p] = value
}

// At returns the isolated value for an account at one period.
func (m *QuarterlyMatrix) At(slug string, p domain.PeriodKey) domain.Amount {
	return m.cells[slug][p]
}

func (m *QuarterlyMatrix) clone() *QuarterlyMatrix {
	out := newQuarterlyMatrix(m.Periods)
	for slug, row := range m.cells {
		for p, value := range row {
			out.set(slug, p, value)
		}
	}
	return out
}

// BuildPeriodMatrix assembles the cumulative matrix for one run:
// every canonical account of the chart resolved against every period
// present in either source. Quarters 1 to 3 resolve against the
// quarterly-cumulative slice; quarter 4 against the annual slice when
// one exists for the year, the quarterly Q4 slice otherwise.
func BuildPeriodMatrix(c *chart.Chart, quarterly, annual []domain.RawLineItem) *PeriodMatrix {
	index := newPeriodIndex(quarterly, annual)
	periods := index.periods()

	matrix := newPeriodMatrix(periods)
	for _, p := range periods {
		slice := index.sliceFor(p)
		for i := range c.Accounts {
			account := &c.Accounts[i]
			matrix.set(account.Slug, p, resolveAccount(account, slice))
		}
	}
	return matrix
}

// resolveAccount dispatches on the account's resolution mechanism.
func resolveAccount(account *chart.Account, rows []domain.RawLineItem) domain.Amount {
	switch {
	case account.Hybrid != nil:
		return ResolveHybrid(account.Hybrid, rows)
	case account.Scalar != nil:
		return ResolveScalar(account.Scalar, rows)
	case account.Synthetic != nil:
		return ExtractSynthetic(account.Synthetic, rows)
	default:
		return Resolve(account.Expr, rows)
	}
}
