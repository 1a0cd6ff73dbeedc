//go:build integration

package google

import (
	"context"
	"os"
	"testing"
	"time"
)

// Integration tests require real Google Sheets credentials
// Run with: go test -tags=integration ./internal/sheets/google

func TestIntegration_ReadStatement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	spreadsheetID := os.Getenv("GOOGLE_SPREADSHEET_ID")
	if spreadsheetID == "" {
		t.Skip("GOOGLE_SPREADSHEET_ID not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := New(ctx, Options{
		SpreadsheetID: spreadsheetID,
		SheetName:     os.Getenv("GOOGLE_SHEET_NAME"),
	}, nil)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	records, err := client.ReadRecords(ctx)
	if err != nil {
		t.Fatalf("ReadRecords failed: %v", err)
	}
	t.Logf("read %d records", len(records))

	for i, r := range records {
		if r.OperationDate == "" {
			t.Errorf("record %d has no operation date", i)
		}
	}
}
