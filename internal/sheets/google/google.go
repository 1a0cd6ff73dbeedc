package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"cardledger/internal/cache"
	"cardledger/internal/core"
	"cardledger/internal/log"
	ports "cardledger/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// DefaultRange is the column span read from the statement sheet.
const DefaultRange = "A:O"

// Options select the statement to read.
type Options struct {
	SpreadsheetID string
	SheetName     string
	// Range defaults to DefaultRange.
	Range    string
	CacheTTL time.Duration
}

// valuesFunc fetches a raw value matrix for an A1 range.
type valuesFunc func(ctx context.Context, rng string) ([][]interface{}, error)

// Client reads a bank statement from a Google spreadsheet.
type Client struct {
	spreadsheetID string
	sheetName     string
	rng           string
	fetch         valuesFunc
	cache         *cache.LRUCache[[]core.Record]
	logger        *log.Logger
}

// Ensure interface conformance
var _ ports.RecordReader = (*Client)(nil)

// New creates a Sheets client using service account credentials from the
// environment (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS).
func New(ctx context.Context, opts Options, logger *log.Logger) (*Client, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return newClient(opts, logger, func(ctx context.Context, rng string) ([][]interface{}, error) {
		resp, err := svc.Spreadsheets.Values.Get(opts.SpreadsheetID, rng).Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		return resp.Values, nil
	}), nil
}

func newClient(opts Options, logger *log.Logger, fetch valuesFunc) *Client {
	if logger == nil {
		logger = log.Discard()
	}
	sheet := strings.TrimSpace(opts.SheetName)
	if sheet == "" {
		sheet = "Операции"
	}
	rng := strings.TrimSpace(opts.Range)
	if rng == "" {
		rng = DefaultRange
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Client{
		spreadsheetID: strings.TrimSpace(opts.SpreadsheetID),
		sheetName:     sheet,
		rng:           rng,
		fetch:         fetch,
		cache:         cache.NewLRUCache[[]core.Record](8, ttl),
		logger:        logger.WithComponent(log.ComponentSheets),
	}
}

// Cache exposes the record cache so callers can register it for cleanup.
func (c *Client) Cache() *cache.LRUCache[[]core.Record] {
	return c.cache
}

// ReadRecords returns every record of the statement sheet. Results are
// cached per range until the TTL expires or InvalidateCache is called.
func (c *Client) ReadRecords(ctx context.Context) ([]core.Record, error) {
	if c.fetch == nil {
		return nil, errors.New("sheets service not initialized")
	}
	key := fmt.Sprintf("%s!%s", quoteSheet(c.sheetName), c.rng)
	records, err := cache.GetOrLoad[[]core.Record](ctx, c.cache, key, c.load)
	if err != nil {
		return nil, err
	}
	return append([]core.Record(nil), records...), nil
}

// InvalidateCache forgets every cached read.
func (c *Client) InvalidateCache() {
	c.cache.Purge()
}

func (c *Client) load(ctx context.Context, rng string) ([]core.Record, error) {
	start := time.Now()
	values, err := c.fetch(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	rows := make([][]string, len(values))
	for i, row := range values {
		rows[i] = ports.ToStrings(row)
	}
	records, err := ports.ParseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rng, err)
	}
	c.logger.InfoContext(ctx, "Statement read from sheet",
		log.FieldOperation, log.OpLoad,
		log.FieldRecordCount, len(records),
		log.FieldDuration, time.Since(start).Milliseconds(),
		"range", rng)
	return records, nil
}

// quoteSheet wraps sheet names that need quoting in A1 notation.
func quoteSheet(name string) string {
	if strings.ContainsAny(name, " '!") {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}

// newSheetsService initializes a read-only Sheets service using Service
// Account credentials.
func newSheetsService(ctx context.Context, logger *log.Logger) (*gsheet.Service, error) {
	if logger == nil {
		logger = log.Discard()
	}
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	// Also check the standard Google Cloud environment variable
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		logger.InfoContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		logger.InfoContext(ctx, "Reading credentials from file", "path", serviceAccountFile)
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}
