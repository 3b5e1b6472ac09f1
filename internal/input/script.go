package input

import (
	"context"
	"strings"
	"sync"

	"jarvis/internal/failure"
)

// Script replays fixed utterances, then reports the input as closed.
type Script struct {
	mu    sync.Mutex
	lines []string
	pos   int
}

func NewScript(lines ...string) *Script {
	return &Script{lines: lines}
}

func (s *Script) Capture(ctx context.Context) (string, error) {
	line, err := s.next(ctx)
	return strings.ToLower(line), err
}

func (s *Script) ReadLine(ctx context.Context, _ string) (string, error) {
	return s.next(ctx)
}

func (s *Script) next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos >= len(s.lines) {
		return "", failure.ErrInputClosed
	}
	line := strings.TrimSpace(s.lines[s.pos])
	s.pos++
	return line, nil
}
