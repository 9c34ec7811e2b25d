package domain

// StatementRow is one canonical account of the output table with its
// per-period cells aligned to StatementTable.Periods.
type StatementRow struct {
	Code  string   `json:"canonical_code"`
	Label string   `json:"canonical_label"`
	Cells []Amount `json:"cells"`
}

// StatementTable is the standardized quarterly series for one
// (ticker, statement kind) run: one row per canonical account of the
// selected chart, in chart order, over chronologically sorted periods.
// Accounts with no resolved value in any period are kept with all
// cells missing.
type StatementTable struct {
	Ticker  string         `json:"ticker"`
	Kind    StatementKind  `json:"kind"`
	Profile string         `json:"profile"`
	Periods []PeriodKey    `json:"periods"`
	Rows    []StatementRow `json:"rows"`
}

// Header returns the output column names:
// canonical_code, canonical_label, then one "<year>-T<quarter>" column
// per period.
func (t *StatementTable) Header() []string {
	header := make([]string, 0, len(t.Periods)+2)
	header = append(header, "canonical_code", "canonical_label")
	for _, p := range t.Periods {
		header = append(header, p.Label())
	}
	return header
}

// Cell returns the amount for a canonical code at one period, missing
// when the code or period is not part of the table. Intended for tests
// and consumers that address single values rather than whole rows.
func (t *StatementTable) Cell(code string, period PeriodKey) Amount {
	col := -1
	for i, p := range t.Periods {
		if p == period {
			col = i
			break
		}
	}
	if col < 0 {
		return Missing()
	}
	for _, row := range t.Rows {
		if row.Code == code {
			return row.Cells[col]
		}
	}
	return Missing()
}
