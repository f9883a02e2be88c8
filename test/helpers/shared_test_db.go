package helpers

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/spacemining-go/internal/adapters/persistence"
	"github.com/andrescamacho/spacemining-go/internal/infrastructure/database"
)

// SharedTestDB is the journal every BDD scenario writes to; TestMain opens it
// and each scenario empties it first
var SharedTestDB *gorm.DB

var errSharedDBClosed = errors.New("shared test journal not initialized")

// InitializeSharedTestDB opens and migrates SharedTestDB
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test journal: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables deletes every row of every ledger model
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return errSharedDBClosed
	}
	for _, model := range persistence.AllModels() {
		if err := SharedTestDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to empty %T: %w", model, err)
		}
	}
	return nil
}

// CloseSharedTestDB closes SharedTestDB if it was opened
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
