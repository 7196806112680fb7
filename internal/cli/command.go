package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Run executes args when they name a subcommand. handled is false for an
// empty argument list or "serve" so the caller can start the server instead.
func Run(args []string, dbPath string, logger *slog.Logger, stdin *os.File, out io.Writer) (handled bool, err error) {
	if len(args) == 0 || args[0] == "serve" {
		return false, nil
	}

	switch args[0] {
	case "reset-password":
		if len(args) != 2 {
			return true, fmt.Errorf("usage: reset-password <email>")
		}
		return true, RunResetPasswordCommand(dbPath, args[1], logger, out)
	case "set-password":
		if len(args) != 2 {
			return true, fmt.Errorf("usage: set-password <email>")
		}
		return true, RunSetPasswordCommand(dbPath, args[1], logger, stdin, out)
	default:
		return true, fmt.Errorf("unknown command %q", args[0])
	}
}
