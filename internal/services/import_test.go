package services

import (
	"context"
	"path/filepath"
	"testing"

	"cardledger/internal/sheets/memory"
	"cardledger/internal/storage"
)

func TestImportIntoSQLite(t *testing.T) {
	ctx := context.Background()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"), nil)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	defer repo.Close()

	src := memory.New(ledger())

	res, err := Import(ctx, src, repo, nil)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.Read != 5 || res.Inserted != 5 {
		t.Errorf("first import = %+v", res)
	}

	res, err = Import(ctx, src, repo, nil)
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}
	if res.Read != 5 || res.Inserted != 0 {
		t.Errorf("re-import should insert nothing, got %+v", res)
	}
}

func TestImportReadError(t *testing.T) {
	if _, err := Import(context.Background(), failingSource{}, memory.New(nil), nil); err == nil {
		t.Fatal("expected error")
	}
}
