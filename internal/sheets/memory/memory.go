package memory

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cardledger/internal/core"
	ports "cardledger/internal/sheets"
)

// Store keeps the ledger in memory. It is loaded once from a statement
// export and can be appended to; reads hand out copies.
type Store struct {
	mu    sync.Mutex
	items []core.Record
}

var (
	_ ports.RecordReader = (*Store)(nil)
	_ ports.RecordWriter = (*Store)(nil)
)

func New(records []core.Record) *Store {
	return &Store{items: append([]core.Record(nil), records...)}
}

// NewFromFile loads a statement export. ".json" files hold an array of
// records keyed by column name; everything else is read as CSV with a
// header row. Both "," and ";" separated CSV are accepted.
func NewFromFile(path string) (*Store, error) {
	records, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Store{items: records}, nil
}

// ReadFile parses a statement export without keeping it.
func ReadFile(path string) ([]core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statement: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var records []core.Record
		if err := json.NewDecoder(f).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return records, nil
	}

	rows, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	records, err := ports.ParseRows(rows)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// ReadRecords returns a copy of the stored ledger.
func (s *Store) ReadRecords(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.items...), nil
}

// WriteRecords appends records to the ledger.
func (s *Store) WriteRecords(_ context.Context, records []core.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, records...)
	return len(records), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(data), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if first, _, _ := strings.Cut(text, "\n"); strings.Count(first, ";") > strings.Count(first, ",") {
		cr.Comma = ';'
	}
	return cr.ReadAll()
}
