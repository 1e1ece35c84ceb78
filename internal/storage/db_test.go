package storage

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"fecdec/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestImportLifecycle(t *testing.T) {
	db := openTestDB(t)

	importID, err := db.BeginImport("filings.zip")
	if err != nil {
		t.Fatal(err)
	}

	records := []internal.Record{
		{SourceFile: "a.csv", LineNo: 2, FormType: "SA11",
			Fields:       map[string]string{"amount": "50.00"},
			OriginalData: map[string]string{"contribution_amount": "50.00"}},
		{SourceFile: "a.csv", LineNo: 3, FormType: "SB21",
			Fields:       map[string]string{"date": "2008-09-30"},
			OriginalData: map[string]string{"date_received": "20080930"}},
	}
	for _, rec := range records {
		if err := db.InsertRecord(importID, rec); err != nil {
			t.Fatal(err)
		}
	}
	if err := db.FinishImport(importID, len(records)); err != nil {
		t.Fatal(err)
	}

	row, err := db.GetImport(importID)
	if err != nil {
		t.Fatal(err)
	}
	if row.Status != "done" || row.Records != 2 || row.Error != nil || row.FinishedAt == nil {
		t.Fatalf("import=%+v", row)
	}

	count, err := db.CountRecords(importID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count=%d", count)
	}
}

func TestFailImport(t *testing.T) {
	db := openTestDB(t)

	importID, err := db.BeginImport("broken.csv")
	if err != nil {
		t.Fatal(err)
	}
	if err := db.FailImport(importID, errors.New("schema not found for ZZ9")); err != nil {
		t.Fatal(err)
	}

	row, err := db.GetImport(importID)
	if err != nil {
		t.Fatal(err)
	}
	if row.Status != "failed" || row.Error == nil || !strings.Contains(*row.Error, "ZZ9") {
		t.Fatalf("import=%+v", row)
	}
}
