// Package sector classifies B3 tickers into one of the three sector
// profiles that select the canonical chart and mapping table for a
// standardization run. Classification is total and deterministic:
// every ticker maps to exactly one profile, unknown tickers fall back
// to the standard profile.
package sector

import (
	"sort"
	"strings"

	"cvmstd/internal/textnorm"
)

// Profile identifies which canonical chart and account mapping table
// a run uses.
type Profile string

const (
	Standard  Profile = "standard"
	Insurance Profile = "insurance"
	Banking   Profile = "banking"
)

// Valid returns true if the profile is one of the known values
func (p Profile) Valid() bool {
	switch p {
	case Standard, Insurance, Banking:
		return true
	}
	return false
}

// Insurers listed on B3. Membership short-circuits the segment table.
var insuranceTickers = map[string]bool{
	"BBSE3":  true,
	"PSSA3":  true,
	"SULA11": true,
	"IRBR3":  true,
	"CXSE3":  true,
}

// Banks listed on B3.
var bankTickers = map[string]bool{
	"ITUB3":  true,
	"ITUB4":  true,
	"BBDC3":  true,
	"BBDC4":  true,
	"BBAS3":  true,
	"SANB3":  true,
	"SANB4":  true,
	"SANB11": true,
	"BPAC11": true,
	"ABCB4":  true,
	"BRSR6":  true,
	"BMGB4":  true,
	"BPAN4":  true,
	"PINE4":  true,
}

// B3 segment labels, compared after textnorm.Normalize.
const (
	insuranceSegment = "seguradoras"
	insuranceSector  = "previdencia e seguros"
	bankingSegment   = "bancos"
)

// Classify returns the sector profile for a ticker. The fixed ticker
// sets are checked first, then the segment label from the table when
// one is supplied. A nil table is allowed and only disables the
// label-based checks.
func Classify(ticker string, table *Table) Profile {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if insuranceTickers[symbol] {
		return Insurance
	}
	if bankTickers[symbol] {
		return Banking
	}
	if table != nil {
		if segment, ok := table.Segment(symbol); ok {
			switch textnorm.Normalize(segment) {
			case insuranceSegment, insuranceSector:
				return Insurance
			case bankingSegment:
				return Banking
			}
		}
	}
	return Standard
}

// InferTicker finds the ticker embedded in a source identifier such as
// a file name, by substring match against the known tickers. Longer
// tickers are tried first so SANB11 wins over SANB3 when both would
// match. Returns false when no known ticker occurs in the identifier.
func InferTicker(identifier string, known []string) (string, bool) {
	if identifier == "" || len(known) == 0 {
		return "", false
	}
	upper := strings.ToUpper(identifier)

	candidates := make([]string, 0, len(known))
	for _, ticker := range known {
		symbol := strings.ToUpper(strings.TrimSpace(ticker))
		if symbol != "" {
			candidates = append(candidates, symbol)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})

	for _, symbol := range candidates {
		if strings.Contains(upper, symbol) {
			return symbol, true
		}
	}
	return "", false
}
