package loader

import (
	"strconv"
	"strings"
	"time"

	"cvmstd/internal/textnorm"
	"cvmstd/pkg/contracts/domain"
)

// columnSet holds the discovered indices of the filing columns.
// An index of -1 means the column is absent.
type columnSet struct {
	date        int
	quarter     int
	code        int
	description int
	value       int
	unit        int
	order       int
}

func newColumnSet() columnSet {
	return columnSet{date: -1, quarter: -1, code: -1, description: -1, value: -1, unit: -1, order: -1}
}

// mapHeader locates the filing columns by normalized header name.
// Provider exports differ in header language, so the canonical CVM
// names and the common variants are all accepted.
func mapHeader(row []string) columnSet {
	cols := newColumnSet()
	for i, header := range row {
		switch textnorm.Normalize(strings.TrimSpace(header)) {
		case "dt_fim_exerc", "data_fim", "data_fim_exercicio", "end_date":
			cols.date = i
		case "trimestre", "quarter":
			cols.quarter = i
		case "cd_conta", "codigo_conta", "conta", "codigo", "code":
			cols.code = i
		case "ds_conta", "descricao_conta", "descricao", "description":
			cols.description = i
		case "vl_conta", "valor", "value":
			cols.value = i
		case "escala_moeda", "unidade_monetaria", "escala", "unit":
			cols.unit = i
		case "ordem_exerc", "ordem":
			cols.order = i
		}
	}
	return cols
}

// found reports whether a row looks like the statement header. Date,
// code and value are enough to anchor the scan; the loaders reject the
// table afterward when missing is non-empty.
func (c columnSet) found() bool {
	return c.date >= 0 && c.code >= 0 && c.value >= 0
}

// missing names the required statement columns the header scan did not
// find, using the canonical CVM spellings. All five fields are
// required: the keyword and stem resolvers read the description text,
// so a table without it cannot be standardized.
func (c columnSet) missing() []string {
	var missing []string
	if c.date < 0 {
		missing = append(missing, "DT_FIM_EXERC")
	}
	if c.quarter < 0 {
		missing = append(missing, "TRIMESTRE")
	}
	if c.code < 0 {
		missing = append(missing, "CD_CONTA")
	}
	if c.description < 0 {
		missing = append(missing, "DS_CONTA")
	}
	if c.value < 0 {
		missing = append(missing, "VL_CONTA")
	}
	return missing
}

// Regulator exports put banner rows above the header, never more than
// a handful.
const headerScanLimit = 10

// findHeader scans the leading rows for the header row.
func findHeader(rows [][]string) (int, columnSet, bool) {
	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		if cols := mapHeader(rows[i]); cols.found() {
			return i, cols, true
		}
	}
	return -1, columnSet{}, false
}

// dateLayouts are the period-end formats CVM and provider exports use.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "2006-01-02 15:04:05"}

func parseDate(cell string) (time.Time, bool) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// CVM duplicates every row for the prior fiscal year labeled PENULTIMO
// in ORDEM_EXERC; only the filing's own period rows are kept.
const currentOrder = "ultimo"

// tableUnit resolves the table-level unit from the unit column when
// present. CVM exports label every row identically, so the first
// non-empty token decides. Files without the column are thousands
// denominated, the CVM standard scale.
func tableUnit(rows [][]string, cols columnSet) (domain.Unit, error) {
	if cols.unit < 0 {
		return domain.UnitThousands, nil
	}
	for _, row := range rows {
		if cols.unit >= len(row) {
			continue
		}
		token := strings.TrimSpace(row[cols.unit])
		if token == "" {
			continue
		}
		return ParseUnit(token)
	}
	return domain.UnitThousands, nil
}

// convertRows turns the data rows after the header into line items.
// Malformed rows are skipped rather than fatal: regulator exports mix
// section banners and subtotal text into the data region. The skipped
// count covers rows that looked like data but failed to parse.
func convertRows(rows [][]string, cols columnSet) ([]domain.RawLineItem, int) {
	var items []domain.RawLineItem
	skipped := 0
	for _, row := range rows {
		cell := func(idx int) string {
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		if cols.order >= 0 {
			if order := textnorm.Normalize(cell(cols.order)); order != "" && order != currentOrder {
				continue
			}
		}

		code := cell(cols.code)
		if code == "" {
			continue
		}
		endDate, ok := parseDate(cell(cols.date))
		if !ok {
			skipped++
			continue
		}
		value, ok := ParseNumber(cell(cols.value))
		if !ok {
			skipped++
			continue
		}

		quarter := 0
		if cols.quarter >= 0 {
			quarter, _ = strconv.Atoi(cell(cols.quarter))
		}
		if quarter == 0 {
			quarter = (int(endDate.Month()) + 2) / 3
		}

		items = append(items, domain.RawLineItem{
			EndDate:     endDate,
			Quarter:     quarter,
			Code:        code,
			Description: cell(cols.description),
			Value:       value,
		})
	}
	return items, skipped
}
