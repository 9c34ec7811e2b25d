package domain

import "fmt"

// Amount is the explicit optional numeric carried through the engine
// end-to-end. A missing cell is Valid=false, never a NaN or zero
// sentinel.
type Amount struct {
	Float64 float64 `json:"value"`
	Valid   bool    `json:"valid"`
}

// AmountOf wraps a resolved value.
func AmountOf(v float64) Amount {
	return Amount{Float64: v, Valid: true}
}

// Missing is the absent-value marker.
func Missing() Amount {
	return Amount{}
}

// Sub returns a-b when both operands are present and missing otherwise.
// Differencing never substitutes zero for an absent operand.
func (a Amount) Sub(b Amount) Amount {
	if !a.Valid || !b.Valid {
		return Missing()
	}
	return AmountOf(a.Float64 - b.Float64)
}

// Scale multiplies a present value by the given factor; missing stays
// missing.
func (a Amount) Scale(factor float64) Amount {
	if !a.Valid {
		return a
	}
	return AmountOf(a.Float64 * factor)
}

// String renders the amount for logs and test failure messages.
func (a Amount) String() string {
	if !a.Valid {
		return "missing"
	}
	return fmt.Sprintf("%.2f", a.Float64)
}
