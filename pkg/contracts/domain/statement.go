package domain

import (
	"fmt"
	"time"
)

// SourceKind identifies which regulator filing a raw table was taken from.
type SourceKind string

const (
	// SourceQuarterly is the ITR filing: values are cumulative from the
	// start of the fiscal year through the end of the labeled quarter.
	SourceQuarterly SourceKind = "quarterly-cumulative"
	// SourceAnnual is the DFP filing: full-year values, always labeled Q4.
	SourceAnnual SourceKind = "annual"
)

// StatementKind identifies which canonical output table a run produces.
type StatementKind string

const (
	StatementIncome   StatementKind = "income"
	StatementCashFlow StatementKind = "cashflow"
)

// Valid reports whether the kind is one of the supported statements.
func (k StatementKind) Valid() bool {
	return k == StatementIncome || k == StatementCashFlow
}

// Unit is the table-level denomination of raw values.
type Unit string

const (
	UnitThousands Unit = "thousands"
	UnitUnits     Unit = "units"
	UnitMillions  Unit = "millions"
)

// Factor returns the multiplicative factor that normalizes values of
// this unit to the thousands-denominated base used internally.
// Unknown units return ok=false and must abort the run before any row
// is processed.
func (u Unit) Factor() (float64, bool) {
	switch u {
	case UnitThousands:
		return 1.0, true
	case UnitUnits:
		return 1000.0, true
	case UnitMillions:
		return 0.001, true
	default:
		return 0, false
	}
}

// RawLineItem is one reported account row of a regulator filing.
// Values arrive already parsed; unit scaling is applied table-wide by
// the engine before any resolution happens.
type RawLineItem struct {
	EndDate     time.Time `json:"end_date"`
	Quarter     int       `json:"quarter" validate:"min=1,max=4"`
	Code        string    `json:"code" validate:"required"`
	Description string    `json:"description"`
	Value       float64   `json:"value"`
}

// Year returns the fiscal year the row belongs to.
func (r RawLineItem) Year() int {
	return r.EndDate.Year()
}

// RawTable is one of the two input tables of a standardization run.
type RawTable struct {
	Kind SourceKind    `json:"kind"`
	Unit Unit          `json:"unit"`
	Rows []RawLineItem `json:"rows"`
}

// PeriodKey identifies one calendar quarter of the output series.
type PeriodKey struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// Label renders the output column header for the period, e.g. "2023-T2".
func (p PeriodKey) Label() string {
	return fmt.Sprintf("%d-T%d", p.Year, p.Quarter)
}

// Before reports whether p precedes q chronologically.
func (p PeriodKey) Before(q PeriodKey) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Quarter < q.Quarter
}

// Prev returns the preceding quarter within the same fiscal year and
// false for Q1, which has no intra-year predecessor.
func (p PeriodKey) Prev() (PeriodKey, bool) {
	if p.Quarter <= 1 {
		return PeriodKey{}, false
	}
	return PeriodKey{Year: p.Year, Quarter: p.Quarter - 1}, true
}
