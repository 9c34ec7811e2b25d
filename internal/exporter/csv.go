package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	"cvmstd/internal/config"
	apperrors "cvmstd/internal/errors"
)

// utf8BOM marks output files as UTF-8 so Excel renders the accented
// account labels correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes CSV files into the run's output directory.
// Standardized tables are always rewritten whole, so every write
// truncates; there is no append mode.
type CSVWriter struct {
	paths *config.Paths
}

// NewCSVWriter creates a writer rooted at the resolved output paths.
func NewCSVWriter(paths *config.Paths) *CSVWriter {
	return &CSVWriter{paths: paths}
}

// WriteTable writes a header row and the records to filePath, replacing
// any previous file. Relative paths land in the output directory;
// parent directories are created as needed.
func (w *CSVWriter) WriteTable(filePath string, header []string, records [][]string) error {
	fullPath := w.resolvePath(filePath)

	slog.Debug("Writing CSV file",
		slog.String("path", fullPath),
		slog.Int("records", len(records)))

	file, err := w.createFile(fullPath)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if len(header) > 0 {
		if err := writer.Write(header); err != nil {
			return apperrors.NewStorageError("failed to write header", err).
				WithContext("path", fullPath)
		}
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError("failed to write record", err).
				WithContext("path", fullPath)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("failed to flush output file", err).
			WithContext("path", fullPath)
	}
	return nil
}

// StreamWriter writes the combined long-format file record by record,
// so a batch of many tables never materializes in memory.
type StreamWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter opens filePath for streaming, writing the byte
// order mark and header immediately.
func (w *CSVWriter) CreateStreamWriter(filePath string, header []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	slog.Debug("Creating CSV stream writer",
		slog.String("path", fullPath))

	file, err := w.createFile(fullPath)
	if err != nil {
		return nil, err
	}

	writer := csv.NewWriter(file)
	if len(header) > 0 {
		if err := writer.Write(header); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write header", err).
				WithContext("path", fullPath)
		}
	}

	return &StreamWriter{path: fullPath, file: file, writer: writer}, nil
}

// WriteRecord appends one record to the stream.
func (s *StreamWriter) WriteRecord(record []string) error {
	if err := s.writer.Write(record); err != nil {
		return apperrors.NewStorageError("failed to write record", err).
			WithContext("path", s.path)
	}
	return nil
}

// Close flushes buffered records and closes the file.
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return apperrors.NewStorageError("failed to flush stream", err).
			WithContext("path", s.path)
	}
	if err := s.file.Close(); err != nil {
		return apperrors.NewStorageError("failed to close stream", err).
			WithContext("path", s.path)
	}
	return nil
}

// createFile truncates or creates the target with its parent
// directories and writes the byte order mark.
func (w *CSVWriter) createFile(fullPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create output directory", err).
			WithContext("path", fullPath)
	}
	file, err := os.Create(fullPath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create output file", err).
			WithContext("path", fullPath)
	}
	if _, err := file.Write(utf8BOM); err != nil {
		file.Close()
		return nil, apperrors.NewStorageError("failed to write byte order mark", err).
			WithContext("path", fullPath)
	}
	return file, nil
}

// resolvePath resolves a relative path into the output directory.
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return w.paths.OutputPath(filePath)
}
