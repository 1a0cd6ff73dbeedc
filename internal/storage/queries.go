package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type RecordRow struct {
	ID            int64
	Fingerprint   string
	OperationDate string
	PaymentDate   string
	CardNumber    string
	Status        string
	Amount        sql.NullString
	Currency      string
	RoundedAmount sql.NullString
	Category      string
	Description   string
	ImportedAt    string
}

type InsertRecordParams struct {
	Fingerprint   string
	OperationDate string
	PaymentDate   string
	CardNumber    string
	Status        string
	Amount        sql.NullString
	Currency      string
	RoundedAmount sql.NullString
	Category      string
	Description   string
	ImportedAt    string
}

const insertRecord = `INSERT OR IGNORE INTO records (
    fingerprint, operation_date, payment_date, card_number, status,
    amount, currency, rounded_amount, category, description, imported_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertRecord returns the number of inserted rows: 0 when the fingerprint
// is already stored.
func (q *Queries) InsertRecord(ctx context.Context, arg InsertRecordParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertRecord,
		arg.Fingerprint,
		arg.OperationDate,
		arg.PaymentDate,
		arg.CardNumber,
		arg.Status,
		arg.Amount,
		arg.Currency,
		arg.RoundedAmount,
		arg.Category,
		arg.Description,
		arg.ImportedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listRecords = `SELECT id, fingerprint, operation_date, payment_date, card_number, status,
    amount, currency, rounded_amount, category, description, imported_at
FROM records
ORDER BY id`

func (q *Queries) ListRecords(ctx context.Context) ([]RecordRow, error) {
	rows, err := q.db.QueryContext(ctx, listRecords)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RecordRow
	for rows.Next() {
		var i RecordRow
		if err := rows.Scan(
			&i.ID,
			&i.Fingerprint,
			&i.OperationDate,
			&i.PaymentDate,
			&i.CardNumber,
			&i.Status,
			&i.Amount,
			&i.Currency,
			&i.RoundedAmount,
			&i.Category,
			&i.Description,
			&i.ImportedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countRecords = `SELECT COUNT(*) FROM records`

func (q *Queries) CountRecords(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countRecords)
	var count int64
	err := row.Scan(&count)
	return count, err
}

type ReportRunRow struct {
	ID          string
	Report      string
	Reference   string
	OutputPath  string
	RecordCount int64
	Status      string
	Error       string
	CreatedAt   string
}

const createReportRun = `INSERT INTO report_runs (
    id, report, reference, output_path, record_count, status, error, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateReportRun(ctx context.Context, arg ReportRunRow) error {
	_, err := q.db.ExecContext(ctx, createReportRun,
		arg.ID,
		arg.Report,
		arg.Reference,
		arg.OutputPath,
		arg.RecordCount,
		arg.Status,
		arg.Error,
		arg.CreatedAt,
	)
	return err
}

const listReportRuns = `SELECT id, report, reference, output_path, record_count, status, error, created_at
FROM report_runs
ORDER BY created_at DESC, rowid DESC
LIMIT ?`

func (q *Queries) ListReportRuns(ctx context.Context, limit int64) ([]ReportRunRow, error) {
	rows, err := q.db.QueryContext(ctx, listReportRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ReportRunRow
	for rows.Next() {
		var i ReportRunRow
		if err := rows.Scan(
			&i.ID,
			&i.Report,
			&i.Reference,
			&i.OutputPath,
			&i.RecordCount,
			&i.Status,
			&i.Error,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
