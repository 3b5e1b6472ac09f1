package announce

import (
	"fmt"
	"io"
	log "log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/muesli/termenv"
)

// DefaultPause separates spoken sentences.
const DefaultPause = 500 * time.Millisecond

type Speaker interface {
	Speak(text string) error
}

// Mirror receives a copy of every announcement (e.g. a message bus).
type Mirror interface {
	Publish(text string) error
}

type Announcer struct {
	out     *termenv.Output
	label   string
	speaker Speaker
	mirror  Mirror
	pause   time.Duration
	sleep   func(time.Duration)
}

type Option func(*Announcer)

func WithSpeaker(s Speaker) Option { return func(a *Announcer) { a.speaker = s } }

func WithMirror(m Mirror) Option { return func(a *Announcer) { a.mirror = m } }

func WithPause(d time.Duration) Option { return func(a *Announcer) { a.pause = d } }

func WithWriter(w io.Writer) Option {
	return func(a *Announcer) { a.out = termenv.NewOutput(w) }
}

func WithLabel(label string) Option { return func(a *Announcer) { a.label = label } }

func New(opts ...Option) *Announcer {
	a := &Announcer{
		out:   termenv.NewOutput(os.Stdout),
		label: "Jarvis:",
		pause: DefaultPause,
		sleep: time.Sleep,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Announce prints text, then speaks it. Printing always happens; speech and
// mirroring are best-effort.
func (a *Announcer) Announce(text string) {
	label := a.out.String(a.label).Foreground(a.out.Color("6"))
	fmt.Fprintln(a.out, label.String(), text)

	if a.mirror != nil {
		if err := a.mirror.Publish(text); err != nil {
			log.Warn("mirror publish failed", "err", err)
		}
	}

	if a.speaker == nil {
		return
	}

	segs := Segments(text)
	for i, seg := range segs {
		if err := a.speaker.Speak(seg); err != nil {
			log.Warn("speech failed", "err", err)
			return
		}
		if i < len(segs)-1 {
			a.sleep(a.pause)
		}
	}
}

var sentenceEnd = regexp.MustCompile(`[.!?]\s+`)

// Segments splits text into sentences at [.!?] followed by whitespace and
// strips ASCII punctuation from each. Segments left empty are dropped.
func Segments(text string) []string {
	var out []string
	add := func(s string) {
		if s = strings.TrimSpace(stripPunct(s)); s != "" {
			out = append(out, s)
		}
	}

	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		add(text[start : loc[0]+1])
		start = loc[1]
	}
	add(text[start:])
	return out
}

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// stripPunct drops ASCII punctuation, except a '.' between two digits so
// that "21.5" is still read as a decimal.
func stripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' && i > 0 && i+1 < len(s) && isDigit(s[i-1]) && isDigit(s[i+1]) {
			b.WriteByte(c)
			continue
		}
		if strings.IndexByte(punctuation, c) >= 0 {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
