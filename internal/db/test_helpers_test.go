package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/ictus/internal/logging"
	"github.com/terraincognita07/ictus/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T, name string) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), name), logging.Discard())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func createTestUser(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		PasswordHash: "hash",
		Birthdate:    time.Date(1990, time.March, 4, 0, 0, 0, 0, time.UTC),
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createTestLog(t *testing.T, database *gorm.DB, userID uint, logTime time.Time) models.UserLog {
	t.Helper()

	entry := models.UserLog{UserID: userID, LogTime: logTime.UTC()}
	if err := NewUserLogRepository(database).Create(&entry); err != nil {
		t.Fatalf("create log: %v", err)
	}
	return entry
}
