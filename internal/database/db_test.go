package database

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNewDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to create DB: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"kv_entries", "store_writes"} {
		var name string
		err := db.SQL.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table '%s' to exist: %v", table, err)
		}
	}

	t.Run("MigrationsAreIdempotent", func(t *testing.T) {
		if err := RunMigrations(dbPath); err != nil {
			t.Fatalf("Expected re-running migrations to succeed, got %v", err)
		}
	})
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 3, 9, 18, 30, 5, 0, time.FixedZone("CET", 3600))
	if got := FormatTime(ts); got != "2024-03-09 17:30:05" {
		t.Errorf("Expected '2024-03-09 17:30:05', got '%s'", got)
	}
}
