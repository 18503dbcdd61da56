package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/basedbot-go/internal/adapters/persistence"
	"github.com/andrescamacho/basedbot-go/internal/infrastructure/database"
)

// SharedTestDB is the database shared by the BDD scenarios
var SharedTestDB *gorm.DB

// InitializeSharedTestDB creates and migrates the shared test database.
// Called once from TestMain.
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables clears every table between scenarios
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	for _, model := range persistence.AllModels() {
		if err := SharedTestDB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("failed to truncate: %w", err)
		}
	}
	return nil
}

// CloseSharedTestDB closes the shared database connection
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
