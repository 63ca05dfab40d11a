package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/synergy-dev/synergy/db"
	"github.com/synergy-dev/synergy/internal/models"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB returns a migrated in-memory database. A single connection is
// enforced so every query sees the same sqlite memory store.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return conn
}

func registerUser(t *testing.T, conn *gorm.DB, name, email string) *models.User {
	t.Helper()

	user, err := NewIdentityService(conn).Register(name, email, "password123", "")
	if err != nil {
		t.Fatalf("failed to register %s: %v", email, err)
	}
	return user
}

func createProject(t *testing.T, conn *gorm.DB, ownerID uint, name string) *models.Project {
	t.Helper()

	project, err := NewProjectService(conn).Create(ownerID, name, "", nil)
	if err != nil {
		t.Fatalf("failed to create project %q: %v", name, err)
	}
	return project
}
