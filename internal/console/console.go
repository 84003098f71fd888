package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

// Console reads answers line by line and writes game output.
// Writes are serialized so the session can be closed from another goroutine.
type Console struct {
	reader *bufio.Reader

	mu  sync.Mutex
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Prompt writes message and blocks until a full line is read. Lines of any
// length are returned whole, so junk input is left to the caller to reject.
// End of input is reported as apperror.ErrInputClosed.
func (that *Console) Prompt(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	that.Printf("%s", message)

	line, err := that.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		// last line without a trailing newline still counts as an answer
		if line == "" {
			return "", apperror.ErrInputClosed
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (that *Console) Printf(format string, args ...any) {
	that.mu.Lock()
	defer that.mu.Unlock()

	// nothing sensible to do when the terminal is gone
	_, _ = fmt.Fprintf(that.out, format, args...)
}

func (that *Console) Println(args ...any) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, _ = fmt.Fprintln(that.out, args...)
}
