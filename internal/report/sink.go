// Package report persists computed reports as JSON files.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cardledger/internal/log"
)

// File names of the reports written to the output directory.
const (
	FileMainPage         = "main_page.json"
	FileSpendingCategory = "spending_by_category.json"
	FileSpendingWeekday  = "spending_by_weekday.json"
	FileSpendingWorkday  = "spending_by_workday.json"
	FileInvestmentJar    = "investment_jar.json"
	FileSearch           = "search_results.json"
	FileSearchPhones     = "search_phones.json"
	FileSearchTransfers  = "search_transfers.json"
)

// Sink writes reports into one directory.
type Sink struct {
	dir    string
	logger *log.StructuredLogger
}

// NewSink creates a sink rooted at dir. The directory is created on first write.
func NewSink(dir string, logger *log.Logger) *Sink {
	if logger == nil {
		logger = log.Discard()
	}
	return &Sink{
		dir:    dir,
		logger: log.NewStructuredLogger(logger.WithComponent(log.ComponentReport)),
	}
}

// Dir returns the output directory.
func (s *Sink) Dir() string {
	return s.dir
}

// Write stores v as file name inside the sink directory and returns the path.
func (s *Sink) Write(ctx context.Context, report, name string, v any) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := WriteJSON(path, v); err != nil {
		s.logger.LogError(ctx, "Failed to write report", err, log.OpWrite,
			log.NewFields().WithReport(report, ""))
		return "", err
	}
	s.logger.LogReportWritten(ctx, report, path)
	return path, nil
}

// WriteJSON encodes v as indented UTF-8 JSON at path, creating parent
// directories as needed. Non-ASCII text is written as is.
func WriteJSON(path string, v any) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report file: %w", cerr)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
