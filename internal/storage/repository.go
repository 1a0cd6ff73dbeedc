package storage

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cardledger/internal/core"
	"cardledger/internal/log"
	ports "cardledger/internal/sheets"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteRepository is the local ledger: imported statement records plus a
// log of report runs.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	logger  *log.Logger
	now     func() time.Time
}

var (
	_ ports.RecordReader = (*SQLiteRepository)(nil)
	_ ports.RecordWriter = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		logger:  logger.WithComponent(log.ComponentStorage),
		now:     time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// WriteRecords implements sheets.RecordWriter. Records already stored are
// skipped, so importing the same statement twice is a no-op. Identical rows
// within one batch are kept apart by their position among duplicates.
func (r *SQLiteRepository) WriteRecords(ctx context.Context, records []core.Record) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	importedAt := r.now().UTC().Format(time.RFC3339)
	seen := make(map[string]int)
	inserted := 0
	for _, rec := range records {
		base := fingerprint(rec)
		occurrence := seen[base]
		seen[base] = occurrence + 1

		n, err := q.InsertRecord(ctx, InsertRecordParams{
			Fingerprint:   base + "#" + strconv.Itoa(occurrence),
			OperationDate: rec.OperationDate,
			PaymentDate:   rec.PaymentDate,
			CardNumber:    rec.CardNumber,
			Status:        string(rec.Status),
			Amount:        nullAmount(rec.Amount),
			Currency:      rec.Currency,
			RoundedAmount: nullAmount(rec.RoundedAmount),
			Category:      rec.Category,
			Description:   rec.Description,
			ImportedAt:    importedAt,
		})
		if err != nil {
			return 0, fmt.Errorf("insert record: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	r.logger.InfoContext(ctx, "Records imported",
		log.FieldOperation, log.OpImport,
		log.FieldRecordCount, len(records),
		"inserted", inserted)

	return inserted, nil
}

// ReadRecords implements sheets.RecordReader, in import order.
func (r *SQLiteRepository) ReadRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.queries.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	out := make([]core.Record, len(rows))
	for i, row := range rows {
		out[i] = core.Record{
			OperationDate: row.OperationDate,
			PaymentDate:   row.PaymentDate,
			CardNumber:    row.CardNumber,
			Status:        core.Status(row.Status),
			Amount:        parseAmount(row.Amount),
			Currency:      row.Currency,
			RoundedAmount: parseAmount(row.RoundedAmount),
			Category:      row.Category,
			Description:   row.Description,
		}
	}
	return out, nil
}

// CountRecords returns the number of stored records.
func (r *SQLiteRepository) CountRecords(ctx context.Context) (int, error) {
	n, err := r.queries.CountRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return int(n), nil
}

// runTimeLayout keeps every fraction digit so created_at sorts as text.
const runTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RecordRun stores the outcome of a report run.
func (r *SQLiteRepository) RecordRun(ctx context.Context, run core.ReportRun) error {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}
	err := r.queries.CreateReportRun(ctx, ReportRunRow{
		ID:          run.ID,
		Report:      run.Report,
		Reference:   run.Reference,
		OutputPath:  run.OutputPath,
		RecordCount: int64(run.RecordCount),
		Status:      string(run.Status),
		Error:       run.Error,
		CreatedAt:   createdAt.UTC().Format(runTimeLayout),
	})
	if err != nil {
		return fmt.Errorf("create report run: %w", err)
	}
	return nil
}

// RecentRuns returns the latest report runs, newest first.
func (r *SQLiteRepository) RecentRuns(ctx context.Context, limit int) ([]core.ReportRun, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", core.ErrInvalidLimit, limit)
	}
	rows, err := r.queries.ListReportRuns(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list report runs: %w", err)
	}
	out := make([]core.ReportRun, 0, len(rows))
	for _, row := range rows {
		createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse run %s created_at: %w", row.ID, err)
		}
		out = append(out, core.ReportRun{
			ID:          row.ID,
			Report:      row.Report,
			Reference:   row.Reference,
			OutputPath:  row.OutputPath,
			RecordCount: int(row.RecordCount),
			Status:      core.RunStatus(row.Status),
			Error:       row.Error,
			CreatedAt:   createdAt,
		})
	}
	return out, nil
}

func fingerprint(r core.Record) string {
	h := sha256.New()
	for _, v := range []string{
		r.OperationDate, r.PaymentDate, r.CardNumber, string(r.Status),
		nullAmount(r.Amount).String, r.Currency, nullAmount(r.RoundedAmount).String,
		r.Category, r.Description,
	} {
		h.Write([]byte(strings.TrimSpace(v)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func nullAmount(d decimal.NullDecimal) sql.NullString {
	if !d.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Decimal.String(), Valid: true}
}

func parseAmount(s sql.NullString) decimal.NullDecimal {
	if !s.Valid {
		return decimal.NullDecimal{}
	}
	return core.ParseAmount(s.String)
}
