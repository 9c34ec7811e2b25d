package standardize

import (
	"sort"

	"cvmstd/pkg/contracts/domain"
)

// periodIndex groups the raw rows of both sources by period. Annual
// rows are keyed by year only and always back the fourth quarter,
// whatever quarter label they carry.
type periodIndex struct {
	quarterly map[domain.PeriodKey][]domain.RawLineItem
	annual    map[int][]domain.RawLineItem
}

func newPeriodIndex(quarterly, annual []domain.RawLineItem) *periodIndex {
	index := &periodIndex{
		quarterly: make(map[domain.PeriodKey][]domain.RawLineItem),
		annual:    make(map[int][]domain.RawLineItem),
	}
	for _, row := range quarterly {
		key := domain.PeriodKey{Year: row.Year(), Quarter: row.Quarter}
		index.quarterly[key] = append(index.quarterly[key], row)
	}
	for _, row := range annual {
		year := row.Year()
		index.annual[year] = append(index.annual[year], row)
	}
	return index
}

// periods returns every (year, quarter) present in either source in
// chronological order. Annual rows contribute the fourth quarter of
// their year. Periods with no rows in either source do not appear.
func (x *periodIndex) periods() []domain.PeriodKey {
	seen := make(map[domain.PeriodKey]bool)
	keys := make([]domain.PeriodKey, 0, len(x.quarterly)+len(x.annual))
	for key := range x.quarterly {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	for year := range x.annual {
		key := domain.PeriodKey{Year: year, Quarter: 4}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

// sliceFor returns the rows backing one period. Quarters 1 to 3 read
// the quarterly source; quarter 4 prefers the annual source for the
// year, falling back to the quarterly source's own Q4 slice only when
// no annual row exists.
func (x *periodIndex) sliceFor(p domain.PeriodKey) []domain.RawLineItem {
	if p.Quarter == 4 {
		if rows, ok := x.annual[p.Year]; ok {
			return rows
		}
	}
	return x.quarterly[p]
}
