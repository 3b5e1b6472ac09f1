package bus

import (
	"encoding/json"
	"fmt"
	log "log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	Source       = "jarvis"
	KindAnnounce = "announce"
)

type BusMessage struct {
	From    string `json:"from"`
	To      string `json:"to,omitempty"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// Bus mirrors announcements to a websocket hub. The connection is dialed
// lazily and redialed on the next Publish after a write failure.
type Bus struct {
	url     string
	timeout time.Duration

	mu   sync.Mutex
	conn *websocket.Conn
}

func New(wsURL string) (*Bus, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("bus url %q: scheme must be ws or wss", wsURL)
	}
	return &Bus{url: u.String(), timeout: 5 * time.Second}, nil
}

func (b *Bus) Publish(text string) error {
	return b.Write(&BusMessage{From: Source, Kind: KindAnnounce, Content: text})
}

func (b *Bus) Write(m *BusMessage) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		if err := b.dial(); err != nil {
			return err
		}
	}

	_ = b.conn.SetWriteDeadline(time.Now().Add(b.timeout))
	if err := b.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		_ = b.conn.Close()
		b.conn = nil
		return fmt.Errorf("bus write: %w", err)
	}
	return nil
}

func (b *Bus) dial() error {
	d := *websocket.DefaultDialer
	d.HandshakeTimeout = b.timeout

	conn, _, err := d.Dial(b.url, nil)
	if err != nil {
		return fmt.Errorf("bus dial: %w", err)
	}
	log.Info("Connected to bus", "url", b.url)
	b.conn = conn
	return nil
}

func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil
	}
	_ = b.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	err := b.conn.Close()
	b.conn = nil
	return err
}
