package backend

import (
	"context"
	"time"

	"cardledger/internal/cache"
	"cardledger/internal/core"
	"cardledger/internal/sheets"
)

// Backend is where reports read the ledger from.
type Backend interface {
	sheets.RecordReader
}

// RunLog keeps a history of report runs. Only the sqlite backend has one.
type RunLog interface {
	RecordRun(ctx context.Context, run core.ReportRun) error
	RecentRuns(ctx context.Context, limit int) ([]core.ReportRun, error)
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional extras
type BackendResult struct {
	Backend Backend
	// Writer is set when the backend accepts imported records.
	Writer sheets.RecordWriter
	// Runs is set when the backend can store report runs.
	Runs RunLog
	// Cache is set when reads are cached and should be cleaned periodically.
	Cache   cache.Cleaner
	Cleanup CleanupFunc
}

// Close runs the cleanup function, if any.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID string
	GoogleSheetName     string
	CacheTTL            time.Duration

	// Memory backend specific
	OperationsPath string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
