// Package loader reads regulator and provider statement exports into
// the raw tables the standardization engine consumes.
//
// Two formats are supported: CSV as published by the CVM open-data
// portal (semicolon separated, Latin-1 encoded, ORDEM_EXERC duplicated
// rows) and XLSX workbooks via excelize. Both share one header-name
// mapping, so provider exports with English column names load the same
// way as canonical CVM files.
//
// # Column mapping
//
// The header row is located by scanning the leading rows for the
// normalized CVM column names (DT_FIM_EXERC, TRIMESTRE, CD_CONTA,
// DS_CONTA, VL_CONTA) or their common variants. All five columns are
// required; a file lacking any of them fails with a SCHEMA error
// before any row is converted. A blank quarter cell within a row
// resolves from the period-end month.
//
// # Units
//
// The table-level unit comes from the ESCALA_MOEDA column when present
// (MIL, UNIDADE and MILHAO aliases accepted); files without the column
// are thousands denominated, the CVM standard scale. An unrecognized
// token fails the load with a UNIT error.
package loader
