package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"jarvis/internal/failure"
)

const commandPrompt = "Command> "

type lineResult struct {
	line string
	err  error
}

// Keyboard reads typed commands line by line. A read that outlives a
// canceled context is kept and handed to the next call, so no line is lost.
type Keyboard struct {
	r           *bufio.Reader
	w           io.Writer
	interactive bool

	mu      sync.Mutex
	pending chan lineResult
	closed  bool
}

// NewKeyboard prints prompts only when r is a terminal.
func NewKeyboard(r io.Reader, w io.Writer) *Keyboard {
	interactive := false
	if f, ok := r.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	return &Keyboard{
		r:           bufio.NewReader(r),
		w:           w,
		interactive: interactive,
	}
}

func (k *Keyboard) Capture(ctx context.Context) (string, error) {
	if k.interactive {
		fmt.Fprint(k.w, commandPrompt)
	}
	line, err := k.read(ctx)
	if err != nil {
		return "", err
	}
	return strings.ToLower(line), nil
}

// ReadLine always shows prompt and keeps the original case.
func (k *Keyboard) ReadLine(ctx context.Context, prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(k.w, prompt)
	}
	return k.read(ctx)
}

func (k *Keyboard) read(ctx context.Context) (string, error) {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return "", failure.ErrInputClosed
	}
	if k.pending == nil {
		ch := make(chan lineResult, 1)
		k.pending = ch
		go func() {
			line, err := k.r.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
	}
	ch := k.pending
	k.mu.Unlock()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		k.mu.Lock()
		k.pending = nil
		if res.err != nil {
			k.closed = true
		}
		k.mu.Unlock()

		line := strings.TrimSpace(res.line)
		switch {
		case res.err == nil:
			return line, nil
		case errors.Is(res.err, io.EOF) && line != "":
			return line, nil
		case errors.Is(res.err, io.EOF):
			return "", failure.ErrInputClosed
		default:
			return "", fmt.Errorf("read input: %w", errors.Join(res.err, failure.ErrInputClosed))
		}
	}
}
