// Package config provides centralized configuration management for the
// standardization toolchain. It handles loading configuration from
// multiple sources, validation, and the resolved path layout shared by
// every component.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (config.yaml or configs/config.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CVMSTD_* for
// namespacing:
//
//	CVMSTD_LOGGING_LEVEL=debug
//	CVMSTD_PATHS_INPUT_DIR=/data/filings
//	CVMSTD_PATHS_OUTPUT_DIR=/data/standardized
//	CVMSTD_PROCESSING_WORKERS=8
//	CVMSTD_PROCESSING_TICKERS=PETR4,VALE3
//	CVMSTD_PROCESSING_COMBINED_CSV=standardized_long.csv
//
// # Path Management
//
// The Paths type resolves the configured directories to absolute
// locations once at startup:
//
//	paths, err := config.NewPaths(cfg.Paths)
//	outPath := paths.StatementCSVPath("PETR4", "income")
//
// # Validation
//
// The assembled configuration is validated with validator/v10 struct
// tags at load time; a failed validation is a CONFIG error carrying
// the underlying field errors.
package config
