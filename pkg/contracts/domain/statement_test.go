package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitFactor(t *testing.T) {
	tests := []struct {
		name   string
		unit   Unit
		want   float64
		wantOK bool
	}{
		{name: "thousands is the base unit", unit: UnitThousands, want: 1.0, wantOK: true},
		{name: "units", unit: UnitUnits, want: 1000.0, wantOK: true},
		{name: "millions", unit: UnitMillions, want: 0.001, wantOK: true},
		{name: "unrecognized token", unit: Unit("bushels"), wantOK: false},
		{name: "empty token", unit: Unit(""), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factor, ok := tt.unit.Factor()
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, factor)
			}
		})
	}
}

func TestPeriodKeyLabel(t *testing.T) {
	assert.Equal(t, "2023-T1", PeriodKey{Year: 2023, Quarter: 1}.Label())
	assert.Equal(t, "1999-T4", PeriodKey{Year: 1999, Quarter: 4}.Label())
}

func TestPeriodKeyBefore(t *testing.T) {
	tests := []struct {
		name string
		p, q PeriodKey
		want bool
	}{
		{"earlier year", PeriodKey{2022, 4}, PeriodKey{2023, 1}, true},
		{"same year earlier quarter", PeriodKey{2023, 1}, PeriodKey{2023, 2}, true},
		{"equal", PeriodKey{2023, 2}, PeriodKey{2023, 2}, false},
		{"later", PeriodKey{2023, 3}, PeriodKey{2023, 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Before(tt.q))
		})
	}
}

func TestPeriodKeyPrev(t *testing.T) {
	prev, ok := PeriodKey{Year: 2023, Quarter: 3}.Prev()
	require.True(t, ok)
	assert.Equal(t, PeriodKey{Year: 2023, Quarter: 2}, prev)

	_, ok = PeriodKey{Year: 2023, Quarter: 1}.Prev()
	assert.False(t, ok)
}

func TestRawLineItemYear(t *testing.T) {
	row := RawLineItem{EndDate: time.Date(2023, 6, 30, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 2023, row.Year())
}

func TestStatementTableHeaderAndCell(t *testing.T) {
	table := &StatementTable{
		Ticker: "WEGE3",
		Kind:   StatementIncome,
		Periods: []PeriodKey{
			{Year: 2023, Quarter: 1},
			{Year: 2023, Quarter: 2},
		},
		Rows: []StatementRow{
			{Code: "net_revenue", Label: "Receita Líquida", Cells: []Amount{AmountOf(100), AmountOf(120)}},
			{Code: "cogs", Label: "Custos", Cells: []Amount{Missing(), AmountOf(-70)}},
		},
	}

	assert.Equal(t, []string{"canonical_code", "canonical_label", "2023-T1", "2023-T2"}, table.Header())
	assert.Equal(t, AmountOf(120), table.Cell("net_revenue", PeriodKey{2023, 2}))
	assert.Equal(t, Missing(), table.Cell("cogs", PeriodKey{2023, 1}))
	assert.Equal(t, Missing(), table.Cell("unknown", PeriodKey{2023, 1}))
	assert.Equal(t, Missing(), table.Cell("cogs", PeriodKey{2024, 1}))
}
