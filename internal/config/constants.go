package config

import "time"

// Application constants for the CVM standardization toolchain.
const (
	AppName    = "cvmstd"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g.
	// CVMSTD_LOGGING_LEVEL or CVMSTD_PROCESSING_WORKERS.
	EnvPrefix = "CVMSTD"

	// Input file naming: <TICKER>_<source>_<statement>.<ext>, e.g.
	// PETR4_itr_income.csv. ITR files carry quarterly cumulative data,
	// DFP files the annual figures.
	SourceTokenQuarterly = "itr"
	SourceTokenAnnual    = "dfp"

	// Output naming: <TICKER>_<statement>_standardized.csv.
	OutputFileSuffix = "_standardized.csv"

	// DefaultCombinedCSV is the long-format file collecting every
	// resolved cell of a batch. Set combined_csv to "" to disable it.
	DefaultCombinedCSV = "standardized_long.csv"

	// CombinedCSVDisabled is the -combined flag value that turns the
	// combined export off. Flags cannot pass the empty string the
	// config file uses, an unset flag means "keep the configured name".
	CombinedCSVDisabled = "none"

	// Default directory layout, relative to the working directory.
	DefaultInputDir   = "data/input"
	DefaultOutputDir  = "data/output"
	DefaultLogsDir    = "logs"
	DefaultSectorFile = "data/sectors.csv"

	// Processing defaults.
	DefaultWorkers    = 4
	MaxWorkers        = 64
	DefaultRunTimeout = 10 * time.Minute

	// Log settings.
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "both"
	DefaultLogFile   = "logs/cvmstd.log"
)

// StatementNames are the canonical statement identifiers accepted in
// configuration and file names.
var StatementNames = []string{"income", "cashflow"}
