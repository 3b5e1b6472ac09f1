package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"os"
	"time"
)

const (
	CmdSay  = "say"
	CmdStop = "stop"
)

const ioTimeout = 2 * time.Second

// ErrTimeout is returned by Receive when no client connected in time.
var ErrTimeout = errors.New("no control message before timeout")

type ControlMessage struct {
	Cmd  string `json:"cmd"`
	Text string `json:"text,omitempty"`
}

// Listener accepts one JSON ControlMessage per connection on a unix socket.
type Listener struct {
	ln   *net.UnixListener
	path string
}

func Listen(path string) (*Listener, error) {
	_ = os.Remove(path)

	ln, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	return &Listener{ln: ln, path: path}, nil
}

func (l *Listener) Path() string { return l.path }

// Receive blocks until a well-formed message arrives, timeout elapses
// (timeout <= 0 waits forever) or ctx is done.
func (l *Listener) Receive(ctx context.Context, timeout time.Duration) (ControlMessage, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := l.ln.SetDeadline(deadline); err != nil {
		return ControlMessage{}, err
	}
	stop := context.AfterFunc(ctx, func() {
		_ = l.ln.SetDeadline(time.Now())
	})
	defer stop()

	for {
		conn, err := l.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ControlMessage{}, ctx.Err()
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return ControlMessage{}, ErrTimeout
			}
			return ControlMessage{}, err
		}

		msg, err := readMessage(conn)
		if err != nil {
			log.Warn("Dropping malformed control message", "err", err)
			continue
		}
		return msg, nil
	}
}

func (l *Listener) Close() error {
	err := l.ln.Close()
	_ = os.Remove(l.path)
	return err
}

func readMessage(conn net.Conn) (ControlMessage, error) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(ioTimeout))

	var msg ControlMessage
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		return ControlMessage{}, err
	}
	switch msg.Cmd {
	case CmdSay, CmdStop:
		return msg, nil
	}
	return ControlMessage{}, fmt.Errorf("unknown command %q", msg.Cmd)
}

// Send delivers one message to a running assistant.
func Send(path string, msg ControlMessage) error {
	conn, err := net.DialTimeout("unix", path, ioTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(ioTimeout))

	return json.NewEncoder(conn).Encode(msg)
}
