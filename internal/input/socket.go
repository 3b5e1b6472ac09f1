package input

import (
	"context"
	"errors"
	log "log/slog"
	"net"
	"strings"
	"time"

	"jarvis/internal/failure"
	"jarvis/internal/ipc"
)

// Socket takes utterances from jarvis-ctl over a unix socket.
type Socket struct {
	l       *ipc.Listener
	timeout time.Duration
}

func NewSocket(l *ipc.Listener, timeout time.Duration) *Socket {
	return &Socket{l: l, timeout: timeout}
}

func (s *Socket) Capture(ctx context.Context) (string, error) {
	msg, err := s.l.Receive(ctx, s.timeout)
	switch {
	case err == nil:
	case errors.Is(err, ipc.ErrTimeout):
		return "", nil
	case errors.Is(err, net.ErrClosed):
		return "", failure.ErrInputClosed
	default:
		return "", err
	}

	if msg.Cmd == ipc.CmdStop {
		log.Info("Stop requested over socket")
		return "", failure.ErrInputClosed
	}
	return strings.ToLower(strings.TrimSpace(msg.Text)), nil
}

// ReadLine waits for the next message without a timeout, keeping its case.
func (s *Socket) ReadLine(ctx context.Context, _ string) (string, error) {
	msg, err := s.l.Receive(ctx, 0)
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return "", failure.ErrInputClosed
		}
		return "", err
	}
	if msg.Cmd == ipc.CmdStop {
		return "", failure.ErrInputClosed
	}
	return strings.TrimSpace(msg.Text), nil
}
