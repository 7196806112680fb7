package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

var errPasswordMismatch = errors.New("passwords do not match")

// RunSetPasswordCommand prompts twice on stdin with echo disabled and stores the result.
func RunSetPasswordCommand(dbPath string, email string, logger *slog.Logger, stdin *os.File, out io.Writer) error {
	password, err := promptNewPassword(func(label string) (string, error) {
		fmt.Fprint(out, label)
		secret, err := readPasswordNoEcho(stdin)
		fmt.Fprintln(out)
		return string(secret), err
	})
	if err != nil {
		return err
	}

	database, closeDatabase, err := openDatabase(dbPath, logger)
	if err != nil {
		return err
	}
	defer closeDatabase()

	if err := SetPassword(database, email, password); err != nil {
		return err
	}

	fmt.Fprintln(out, "Password updated")
	return nil
}

func promptNewPassword(read func(label string) (string, error)) (string, error) {
	first, err := read("New password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if first == "" {
		return "", errors.New("password is required")
	}

	second, err := read("Repeat password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if first != second {
		return "", errPasswordMismatch
	}
	return first, nil
}
