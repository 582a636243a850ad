package testutil

import (
	"path/filepath"
	"testing"

	"github.com/killallgit/stationcast/internal/database"
	"github.com/killallgit/stationcast/internal/models"
)

// SetupTestDB creates a file-backed SQLite database in a temp dir with the
// full schema applied. The connection is closed when the test completes.
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"), false)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
