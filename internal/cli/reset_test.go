package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/logging"
	"github.com/terraincognita07/ictus/internal/models"
	"github.com/terraincognita07/ictus/internal/security"
)

func createCLITestUser(t *testing.T, dbPath string, email string) {
	t.Helper()

	database, closeDatabase, err := openDatabase(dbPath, logging.Discard())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer closeDatabase()

	hash, err := security.HashPassword("original password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		PasswordHash: hash,
		Birthdate:    time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.NewRepositories(database).Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}
}

func storedPasswordMatches(t *testing.T, dbPath string, email string, password string) bool {
	t.Helper()

	database, closeDatabase, err := openDatabase(dbPath, logging.Discard())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer closeDatabase()

	user, found, err := db.NewRepositories(database).Users.FindByNormalizedEmail(email)
	if err != nil || !found {
		t.Fatalf("load user %s: found=%v err=%v", email, found, err)
	}
	matches, err := security.PasswordMatches(user.PasswordHash, password)
	if err != nil {
		t.Fatalf("compare password: %v", err)
	}
	return matches
}

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 8 {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want 8", len(password))
	}
}

func TestGenerateTemporaryPasswordAlphabet(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != temporaryPasswordLength {
		t.Fatalf("generateTemporaryPassword len = %d, want %d", len(password), temporaryPasswordLength)
	}
	for _, char := range password {
		if !strings.ContainsRune(security.TemporaryPasswordAlphabet, char) {
			t.Fatalf("password %q contains char %q outside alphabet", password, char)
		}
	}
}

func TestRunResetPasswordCommandPrintsWorkingPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ictus.db")
	createCLITestUser(t, dbPath, "ada@example.com")

	var out bytes.Buffer
	if err := RunResetPasswordCommand(dbPath, "  ADA@example.com ", logging.Discard(), &out); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	var temporary string
	for _, line := range strings.Split(out.String(), "\n") {
		if value, ok := strings.CutPrefix(line, "Temporary password: "); ok {
			temporary = value
		}
	}
	if len(temporary) != temporaryPasswordLength {
		t.Fatalf("expected temporary password in output, got %q", out.String())
	}
	if !storedPasswordMatches(t, dbPath, "ada@example.com", temporary) {
		t.Fatal("expected stored hash to match printed temporary password")
	}
	if storedPasswordMatches(t, dbPath, "ada@example.com", "original password") {
		t.Fatal("expected original password to stop working")
	}
}

func TestResetPasswordUnknownAccount(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ictus.db")
	createCLITestUser(t, dbPath, "ada@example.com")

	database, closeDatabase, err := openDatabase(dbPath, logging.Discard())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer closeDatabase()

	if _, err := ResetPassword(database, "nobody@example.com"); !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
	if _, err := ResetPassword(database, "not an email"); err == nil {
		t.Fatal("expected invalid email to fail")
	}
}
