package chart

import (
	"strings"
)

// Expr is a parsed account mapping expression. Expressions are parsed
// once when a chart is built, never per period. The grammar is split
// based, with no precedence beyond the splitting itself: "|" separates
// ordered alternatives at the top level, "+" separates addends inside
// one alternative, anything else is a single account code.
type Expr interface {
	String() string
	exprNode()
}

// Literal resolves one account code: exact match on the period's rows
// first, hierarchical rollup over dotted-prefix descendants second.
type Literal struct {
	Code string
}

// Sum adds its terms. If every term is missing the sum is missing;
// otherwise missing terms count as zero.
type Sum struct {
	Terms []Expr
}

// Fallback evaluates its terms in order and returns the first one
// that resolves.
type Fallback struct {
	Terms []Expr
}

func (Literal) exprNode()  {}
func (Sum) exprNode()      {}
func (Fallback) exprNode() {}

func (l Literal) String() string {
	return l.Code
}

func (s Sum) String() string {
	return joinTerms(s.Terms, "+")
}

func (f Fallback) String() string {
	return joinTerms(f.Terms, "|")
}

func joinTerms(terms []Expr, sep string) string {
	parts := make([]string, len(terms))
	for i, term := range terms {
		parts[i] = term.String()
	}
	return strings.Join(parts, sep)
}

// Parse parses an account mapping expression. Parsing is total: any
// non-blank token is taken as an account code. A blank expression
// parses to nil, which always resolves to missing.
func Parse(expression string) Expr {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return nil
	}
	if !strings.Contains(trimmed, "|") {
		return parseSum(trimmed)
	}

	terms := make([]Expr, 0, 2)
	for _, part := range strings.Split(trimmed, "|") {
		if term := parseSum(part); term != nil {
			terms = append(terms, term)
		}
	}
	switch len(terms) {
	case 0:
		return nil
	case 1:
		return terms[0]
	}
	return Fallback{Terms: terms}
}

func parseSum(expression string) Expr {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return nil
	}
	if !strings.Contains(trimmed, "+") {
		return Literal{Code: trimmed}
	}

	terms := make([]Expr, 0, 2)
	for _, part := range strings.Split(trimmed, "+") {
		code := strings.TrimSpace(part)
		if code != "" {
			terms = append(terms, Literal{Code: code})
		}
	}
	switch len(terms) {
	case 0:
		return nil
	case 1:
		return terms[0]
	}
	return Sum{Terms: terms}
}
