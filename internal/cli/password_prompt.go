package cli

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

var errNoTerminal = errors.New("stdin unavailable")

// readSecretLine reads one line and drops the trailing newline. A final line
// without newline is accepted.
func readSecretLine(source io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(source).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
