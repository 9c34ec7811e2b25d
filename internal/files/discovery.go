package files

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"cvmstd/internal/config"
	apperrors "cvmstd/internal/errors"
	"cvmstd/internal/sector"
	"cvmstd/pkg/contracts/domain"
)

// Filing is one raw statement file found in the input directory.
type Filing struct {
	Path      string
	Name      string
	Ticker    string
	Source    domain.SourceKind
	Statement domain.StatementKind
	Size      int64
	ModTime   time.Time
}

// StatementFiles collects the filings feeding one standardization run:
// the quarterly ITR series plus an optional annual DFP file for the
// same ticker and statement.
type StatementFiles struct {
	Ticker    string
	Statement domain.StatementKind
	Quarterly *Filing
	Annual    *Filing
}

// Discovery scans an input directory for raw statement filings. File
// names follow <TICKER>_<source>_<statement>.<ext> with source itr or
// dfp, statement income or cashflow (dre and dfc are accepted as
// aliases) and extension .csv or .xlsx. The known ticker list, usually
// the sector table's tickers, lets Discovery recover the ticker from
// names that do not lead with it.
type Discovery struct {
	inputDir string
	known    []string
}

// NewDiscovery creates a discovery instance over the given input
// directory. known may be nil when no sector table is loaded.
func NewDiscovery(inputDir string, known []string) *Discovery {
	return &Discovery{inputDir: inputDir, known: known}
}

// Scan reads the input directory and returns every file whose name
// parses as a filing, sorted by name. Files that do not parse are
// ignored.
func (d *Discovery) Scan() ([]Filing, error) {
	entries, err := os.ReadDir(d.inputDir)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read input directory", err).
			WithContext("path", d.inputDir)
	}

	var filings []Filing
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filing, ok := d.parse(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		filing.Path = filepath.Join(d.inputDir, entry.Name())
		filing.Size = info.Size()
		filing.ModTime = info.ModTime()
		filings = append(filings, filing)
	}

	sort.Slice(filings, func(i, j int) bool {
		return filings[i].Name < filings[j].Name
	})
	return filings, nil
}

// Runs groups the scanned filings into per-run sets keyed by ticker
// and statement, sorted by ticker then statement. When both a CSV and
// an XLSX cover the same slot the CSV wins; a set may hold an annual
// file without a quarterly one, the caller decides what to do with it.
func (d *Discovery) Runs() ([]StatementFiles, error) {
	filings, err := d.Scan()
	if err != nil {
		return nil, err
	}

	type key struct {
		ticker    string
		statement domain.StatementKind
	}
	sets := make(map[key]*StatementFiles)
	for i := range filings {
		filing := &filings[i]
		k := key{filing.Ticker, filing.Statement}
		set, ok := sets[k]
		if !ok {
			set = &StatementFiles{Ticker: filing.Ticker, Statement: filing.Statement}
			sets[k] = set
		}
		switch filing.Source {
		case domain.SourceQuarterly:
			if set.Quarterly == nil || prefer(filing, set.Quarterly) {
				set.Quarterly = filing
			}
		case domain.SourceAnnual:
			if set.Annual == nil || prefer(filing, set.Annual) {
				set.Annual = filing
			}
		}
	}

	runs := make([]StatementFiles, 0, len(sets))
	for _, set := range sets {
		runs = append(runs, *set)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Ticker != runs[j].Ticker {
			return runs[i].Ticker < runs[j].Ticker
		}
		return runs[i].Statement < runs[j].Statement
	})
	return runs, nil
}

// prefer reports whether a should replace b in the same slot. CSV
// beats XLSX; between equal formats the earlier name stays.
func prefer(a, b *Filing) bool {
	return strings.EqualFold(filepath.Ext(a.Name), ".csv") &&
		!strings.EqualFold(filepath.Ext(b.Name), ".csv")
}

// parse extracts ticker, source and statement from a file name.
func (d *Discovery) parse(name string) (Filing, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".csv" && ext != ".xlsx" {
		return Filing{}, false
	}
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	tokens := strings.FieldsFunc(strings.ToLower(stem), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var source domain.SourceKind
	sourceAt := -1
	var statement domain.StatementKind
	for i, token := range tokens {
		switch token {
		case config.SourceTokenQuarterly:
			if sourceAt < 0 {
				source = domain.SourceQuarterly
				sourceAt = i
			}
		case config.SourceTokenAnnual:
			if sourceAt < 0 {
				source = domain.SourceAnnual
				sourceAt = i
			}
		default:
			if kind, ok := statementToken(token); ok && statement == "" {
				statement = kind
			}
		}
	}
	if sourceAt < 0 || statement == "" {
		return Filing{}, false
	}

	// A known ticker anywhere in the name is authoritative; otherwise
	// the tokens before the source token form the ticker, skipping
	// statement tokens so names like dre_itr_XYZ9 do not yield "DRE".
	ticker, ok := sector.InferTicker(stem, d.known)
	if !ok {
		ticker = tickerSegment(tokens[:sourceAt])
	}
	if ticker == "" {
		return Filing{}, false
	}

	return Filing{Name: name, Ticker: ticker, Source: source, Statement: statement}, true
}

// statementToken maps a file-name token to the statement kind it
// names.
func statementToken(token string) (domain.StatementKind, bool) {
	switch token {
	case "income", "dre":
		return domain.StatementIncome, true
	case "cashflow", "dfc":
		return domain.StatementCashFlow, true
	}
	return "", false
}

// tickerSegment joins the given name tokens into a ticker candidate,
// leaving out statement tokens.
func tickerSegment(tokens []string) string {
	var parts []string
	for _, token := range tokens {
		if _, ok := statementToken(token); ok {
			continue
		}
		parts = append(parts, token)
	}
	return strings.ToUpper(strings.Join(parts, "_"))
}

// FilterTickers keeps only the runs whose ticker appears in the allow
// list. An empty list keeps everything.
func FilterTickers(runs []StatementFiles, tickers []string) []StatementFiles {
	if len(tickers) == 0 {
		return runs
	}
	allowed := make(map[string]bool, len(tickers))
	for _, ticker := range tickers {
		allowed[strings.ToUpper(strings.TrimSpace(ticker))] = true
	}

	var filtered []StatementFiles
	for _, run := range runs {
		if allowed[run.Ticker] {
			filtered = append(filtered, run)
		}
	}
	return filtered
}

// Tickers returns the distinct tickers across the given runs, sorted.
func Tickers(runs []StatementFiles) []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, run := range runs {
		if !seen[run.Ticker] {
			seen[run.Ticker] = true
			tickers = append(tickers, run.Ticker)
		}
	}
	sort.Strings(tickers)
	return tickers
}
