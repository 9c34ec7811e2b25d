package loader

import (
	"fmt"
	"strings"
	"unicode"

	apperrors "cvmstd/internal/errors"
	"cvmstd/internal/textnorm"
	"cvmstd/pkg/contracts/domain"
)

// Unit token aliases as filings print them, compared after
// textnorm.Normalize. Millions is checked before thousands because
// "milhoes" carries the word stem "mil".
var (
	millionAliases  = []string{"milhao", "milhoes", "million"}
	thousandAliases = []string{"milhar", "thousand"}
	unitAliases     = []string{"unidade", "unit", "reais"}
)

// ParseUnit maps a filing's unit token to the canonical unit. Accepted
// spellings include the CVM ESCALA_MOEDA values (MIL, UNIDADE) and the
// prose labels provider exports use ("R$ Mil", "Em Milhares de Reais",
// "Milhões"). Unknown tokens fail with a UNIT error.
func ParseUnit(token string) (domain.Unit, error) {
	normalized := textnorm.Normalize(token)
	if strings.TrimSpace(normalized) == "" {
		return "", apperrors.NewUnitError("unit token is empty")
	}
	switch {
	case containsAlias(normalized, millionAliases):
		return domain.UnitMillions, nil
	case containsAlias(normalized, thousandAliases) || hasWord(normalized, "mil"):
		return domain.UnitThousands, nil
	case containsAlias(normalized, unitAliases) || hasWord(normalized, "real"):
		return domain.UnitUnits, nil
	}
	return "", apperrors.NewUnitError(fmt.Sprintf("unrecognized unit token %q", token))
}

func containsAlias(normalized string, aliases []string) bool {
	for _, alias := range aliases {
		if strings.Contains(normalized, alias) {
			return true
		}
	}
	return false
}

// hasWord matches a whole word so "mil" does not fire inside "milhoes".
func hasWord(normalized, word string) bool {
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, field := range fields {
		if field == word {
			return true
		}
	}
	return false
}
