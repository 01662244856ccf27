package user

import (
	"testing"

	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/hairizuanbinnoorazman/bizadmin/testutil"
	"gorm.io/gorm"
)

// setupTestStore creates a test database and user store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, Store) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &User{})

	log := logger.NewTestLogger()
	store := NewSQLStore(db, log)

	return db, store
}

// createTestUser creates a test user with default values.
func createTestUser(t *testing.T, email string, role auth.Role, password string) *User {
	t.Helper()
	user := &User{
		Email: email,
		Name:  "Test User",
		Role:  role,
	}
	if err := user.SetPassword(password); err != nil {
		t.Fatalf("failed to set password: %v", err)
	}
	return user
}
