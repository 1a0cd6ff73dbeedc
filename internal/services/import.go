package services

import (
	"context"
	"fmt"

	"cardledger/internal/log"
	"cardledger/internal/sheets"
)

// ImportResult counts what an import read and how much of it was new.
type ImportResult struct {
	Read     int
	Inserted int
}

// Import copies every record from src into dst. Writers that deduplicate
// report only the records they actually stored.
func Import(ctx context.Context, src sheets.RecordReader, dst sheets.RecordWriter, logger *log.Logger) (ImportResult, error) {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentStorage)

	records, err := src.ReadRecords(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read records: %w", err)
	}

	inserted, err := dst.WriteRecords(ctx, records)
	if err != nil {
		return ImportResult{}, fmt.Errorf("write records: %w", err)
	}

	logger.InfoContext(ctx, "Imported records",
		log.FieldOperation, log.OpImport,
		log.FieldRecordCount, len(records),
		"inserted", inserted)

	return ImportResult{Read: len(records), Inserted: inserted}, nil
}
