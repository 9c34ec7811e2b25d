package loader

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber parses one numeric cell as Brazilian exports format it:
// "." grouping thousands, "," as the decimal separator, parentheses
// for negatives, an optional R$ prefix. Plain machine formats parse
// too. Blank and placeholder cells return ok=false.
func ParseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" || s == "--" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))

	d, err := decimal.NewFromString(normalizeSeparators(s))
	if err != nil {
		return 0, false
	}
	if negative {
		d = d.Neg()
	}
	f, _ := d.Float64()
	return f, true
}

// normalizeSeparators rewrites pt-BR separators into machine form.
// With both separators present the comma is the decimal point; a lone
// comma is the decimal point; a lone dot is a thousands separator only
// when it groups exactly three trailing digits, which is how CVM
// prints integer values.
func normalizeSeparators(s string) string {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ".", "")
		return strings.ReplaceAll(s, ",", ".")
	case hasComma:
		return strings.ReplaceAll(s, ",", ".")
	case hasDot && isDotGrouped(s):
		return strings.ReplaceAll(s, ".", "")
	default:
		return s
	}
}

// isDotGrouped reports whether every dot-separated group after the
// first has exactly three digits, e.g. "1.234.567".
func isDotGrouped(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts[1:] {
		if len(part) != 3 {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
