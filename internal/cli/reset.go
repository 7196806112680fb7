// Package cli holds the operator subcommands that run against the database
// without starting the HTTP server.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/terraincognita07/ictus/internal/db"
	"github.com/terraincognita07/ictus/internal/models"
	"github.com/terraincognita07/ictus/internal/security"
	"github.com/terraincognita07/ictus/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

var ErrUnknownAccount = errors.New("no account with that email")

// RunResetPasswordCommand assigns a temporary password and prints it to out.
func RunResetPasswordCommand(dbPath string, email string, logger *slog.Logger, out io.Writer) error {
	database, closeDatabase, err := openDatabase(dbPath, logger)
	if err != nil {
		return err
	}
	defer closeDatabase()

	temporary, err := ResetPassword(database, email)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporary)
	fmt.Fprintln(out, "Ask the user to change it after the next login.")
	return nil
}

func openDatabase(dbPath string, logger *slog.Logger) (*gorm.DB, func(), error) {
	database, err := db.OpenSQLite(dbPath, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, func() { _ = sqlDB.Close() }, nil
}

func ResetPassword(database *gorm.DB, email string) (string, error) {
	temporary, err := generateTemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	if err := SetPassword(database, email, temporary); err != nil {
		return "", err
	}
	return temporary, nil
}

// SetPassword stores a new bcrypt hash for the account owning email.
func SetPassword(database *gorm.DB, email string, password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	repos := db.NewRepositories(database)
	user, err := findAccount(repos, email)
	if err != nil {
		return err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := repos.Users.UpdatePassword(user.ID, hash); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

func findAccount(repos *db.Repositories, raw string) (models.User, error) {
	email := services.NormalizeAuthEmail(raw)
	if email == "" {
		return models.User{}, fmt.Errorf("invalid email address %q", raw)
	}

	user, found, err := repos.Users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if !found {
		return models.User{}, fmt.Errorf("%w: %s", ErrUnknownAccount, email)
	}
	return user, nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return security.RandomString(length, security.TemporaryPasswordAlphabet)
}
