package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Paths is the resolved filesystem layout of one run.
// This is the single source of truth for all file paths in the application.
type Paths struct {
	InputDir   string
	OutputDir  string
	SectorFile string
	LogsDir    string
}

// NewPaths resolves the configured directories to absolute paths so
// every component logs and opens the same locations regardless of its
// working directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	resolve := func(path string) (string, error) {
		if path == "" {
			return "", nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		return abs, nil
	}

	input, err := resolve(cfg.InputDir)
	if err != nil {
		return nil, err
	}
	output, err := resolve(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	sector, err := resolve(cfg.SectorFile)
	if err != nil {
		return nil, err
	}
	logs, err := resolve(cfg.LogsDir)
	if err != nil {
		return nil, err
	}

	return &Paths{
		InputDir:   input,
		OutputDir:  output,
		SectorFile: sector,
		LogsDir:    logs,
	}, nil
}

// EnsureDirectories creates the writable directories if they don't
// exist. The input directory is the caller's and is never created.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// InputPath returns the path of a file in the input directory.
func (p *Paths) InputPath(filename string) string {
	return filepath.Join(p.InputDir, filename)
}

// OutputPath returns the path of a file in the output directory.
func (p *Paths) OutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// LogPath returns the path of a log file.
func (p *Paths) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// StatementCSVPath returns the output path for one standardized
// statement, e.g. PETR4_income_standardized.csv.
func (p *Paths) StatementCSVPath(ticker, statement string) string {
	filename := fmt.Sprintf("%s_%s%s", strings.ToUpper(ticker), statement, OutputFileSuffix)
	return filepath.Join(p.OutputDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
