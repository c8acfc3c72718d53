// Package dbtest provides throwaway migrated databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"marketplace/internal/config"
	"marketplace/internal/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New opens a private in-memory SQLite database with the full schema. It is
// closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
