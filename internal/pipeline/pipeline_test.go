package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dvloznov/spent-tracker/internal/logger"
	"github.com/dvloznov/spent-tracker/internal/store"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	return logger.WithContext(context.Background(), logger.NewWithWriter(os.Stderr))
}

func TestImportEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "usaa.csv",
		"posted,,01/15/2023,,SAFEWAY,Groceries,$12.34\n"+
			"posted,,01/14/2023,,CAFE,Dining,$4.50\n")
	writeFile(t, dir, "Chase1234.CSV",
		"Transaction Date,Post Date,Description,Category,Type,Amount\n"+
			"01/13/2023,01/14/2023,AMAZON,Shopping,Sale,-9.99\n")
	writeFile(t, dir, "notes.txt", "not a csv, must be left alone")

	historyStore := store.NewMemory(nil)
	cfg := Config{CSVDir: dir}

	imported, err := Import(testContext(t), cfg, historyStore)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if imported != 3 {
		t.Fatalf("imported = %d, want 3", imported)
	}
	if historyStore.Uploads != 1 {
		t.Errorf("uploads = %d, want 1", historyStore.Uploads)
	}

	history, err := historyStore.Download(context.Background())
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	// Newest first, with the slash dates already rewritten to dash form.
	if history[0].Description != "SAFEWAY" {
		t.Errorf("first transaction = %q, want SAFEWAY", history[0].Description)
	}
	wantDates := []string{"2023-01-15", "2023-01-14", "2023-01-13"}
	for i, want := range wantDates {
		if history[i].Date != want {
			t.Errorf("history[%d].Date = %q, want %q", i, history[i].Date, want)
		}
	}

	// The CSVs are gone, the unrelated file survives.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "notes.txt" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("leftover files = %v, want only notes.txt", names)
	}
}

func TestImportReimportIsNoop(t *testing.T) {
	contents := "posted,,01/15/2023,,SAFEWAY,Groceries,$12.34\n"

	dir := t.TempDir()
	writeFile(t, dir, "usaa.csv", contents)

	historyStore := store.NewMemory(nil)
	if _, err := Import(testContext(t), Config{CSVDir: dir}, historyStore); err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	// Drop the same file again.
	writeFile(t, dir, "usaa.csv", contents)
	imported, err := Import(testContext(t), Config{CSVDir: dir}, historyStore)
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if imported != 0 {
		t.Errorf("imported = %d, want 0", imported)
	}
	// The unchanged history is never rewritten.
	if historyStore.Uploads != 1 {
		t.Errorf("uploads = %d, want 1", historyStore.Uploads)
	}
}

func TestImportKeepFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "usaa.csv", "posted,,01/15/2023,,SAFEWAY,Groceries,$12.34\n")

	cfg := Config{CSVDir: dir, KeepFiles: true}
	if _, err := Import(testContext(t), cfg, store.NewMemory(nil)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "usaa.csv")); err != nil {
		t.Errorf("expected usaa.csv to survive: %v", err)
	}
}

func TestImportUnknownFormatIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mystery.csv", "some,unknown,format\n1,2,3\n")

	imported, err := Import(testContext(t), Config{CSVDir: dir}, store.NewMemory(nil))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if imported != 0 {
		t.Errorf("imported = %d, want 0", imported)
	}
}

func TestImportMissingDirectoryFails(t *testing.T) {
	cfg := Config{CSVDir: filepath.Join(t.TempDir(), "does-not-exist")}
	if _, err := Import(testContext(t), cfg, store.NewMemory(nil)); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}
