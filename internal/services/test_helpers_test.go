package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/logging"
	"github.com/terraincognita07/ictus/internal/models"
	"github.com/terraincognita07/ictus/internal/security"
)

const (
	testSleepQualityID     = uint(1)
	testSleepDurationID    = uint(2)
	testStressLevelID      = uint(3)
	testCaffeineID         = uint(4)
	testHeadacheProdromeID = uint(1)
	testTonicClonicTypeID  = uint(1)
	testVisualAuraID       = uint(1)
)

func openTestRepositories(t *testing.T) *db.Repositories {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "ictus.db"), logging.Discard())
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
	return db.NewRepositories(database)
}

func createServiceTestUser(t *testing.T, repos *db.Repositories, email string, password string) models.User {
	t.Helper()

	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        email,
		PasswordHash: hash,
		Birthdate:    time.Date(1985, time.December, 9, 0, 0, 0, 0, time.UTC),
	}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createServiceTestLog(t *testing.T, repos *db.Repositories, userID uint, logTime time.Time) models.UserLog {
	t.Helper()

	entry := models.UserLog{UserID: userID, LogTime: logTime.UTC().Truncate(time.Second)}
	if err := repos.UserLogs.Create(&entry); err != nil {
		t.Fatalf("create log: %v", err)
	}
	return entry
}

func ptr[T any](value T) *T {
	return &value
}

func fixedClock(value time.Time) func() time.Time {
	return func() time.Time { return value }
}
