// Package sheets defines where ledger records come from. A statement is a
// header row plus value rows; readers turn it into core records.
package sheets

import (
	"context"

	"cardledger/internal/core"
)

// Ports for record sources and sinks.
type (
	// RecordReader returns the full ledger as one materialized batch.
	RecordReader interface {
		ReadRecords(ctx context.Context) ([]core.Record, error)
	}

	// RecordWriter stores a batch of records and reports how many were new.
	RecordWriter interface {
		WriteRecords(ctx context.Context, records []core.Record) (int, error)
	}
)
