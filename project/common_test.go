package project

import (
	"testing"

	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/testutil"
	"gorm.io/gorm"
)

// setupTestStore creates a test database and project store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, Store) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &Project{})

	log := logger.NewTestLogger()
	store := NewSQLStore(db, log)

	return db, store
}

// createTestProject creates a test project with default values.
func createTestProject(name, description string, clientID int) *Project {
	return &Project{
		ClientID:    clientID,
		ProjectName: name,
		Description: description,
	}
}
