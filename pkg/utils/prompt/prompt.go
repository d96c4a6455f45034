package prompt

import (
	"bufio"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ReadLine reads one line of input, blocking until the operator
// responds. Only the trailing newline (and a carriage return, if any)
// is stripped; the rest of the line is returned verbatim so callers can
// apply exact-match semantics.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", goerr.Wrap(err, "failed to read confirmation input")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
