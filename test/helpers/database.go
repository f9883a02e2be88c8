package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/spacemining-go/internal/infrastructure/database"
)

// NewTestDB returns a private migrated in-memory journal for one test
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "open test journal")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
