package testutil

import (
	"fmt"
	"testing"

	"collabex_backend/database"
	"collabex_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory sqlite database with the full schema.
// The database is closed when the test ends.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
