package announce

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSpeaker struct {
	said   []string
	err    error
	failAt int
}

func (f *fakeSpeaker) Speak(text string) error {
	f.said = append(f.said, text)
	if f.err != nil && len(f.said) >= f.failAt {
		return f.err
	}
	return nil
}

type fakeMirror struct {
	got []string
	err error
}

func (f *fakeMirror) Publish(text string) error {
	f.got = append(f.got, text)
	return f.err
}

func newTestAnnouncer(opts ...Option) (*Announcer, *bytes.Buffer, *[]time.Duration) {
	var buf bytes.Buffer
	var pauses []time.Duration
	a := New(append([]Option{WithWriter(&buf)}, opts...)...)
	a.sleep = func(d time.Duration) { pauses = append(pauses, d) }
	return a, &buf, &pauses
}

func TestSegments(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Hello Sir! How may I assist you?", []string{"Hello Sir", "How may I assist you"}},
		{"One. Two.  Three", []string{"One", "Two", "Three"}},
		{"Version 1.5 is out.", []string{"Version 1.5 is out"}},
		{"Temperature 21.5°C. Wind 3.6 m/s.", []string{"Temperature 21.5°C", "Wind 3.6 ms"}},
		{"Chapter 3. Done", []string{"Chapter 3", "Done"}},
		{"Pi is 3.14.", []string{"Pi is 3.14"}},
		{"Wait... what?!", []string{"Wait", "what"}},
		{"...", nil},
		{"", nil},
		{"Thinking...", []string{"Thinking"}},
		{"Line one.\nLine two", []string{"Line one", "Line two"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Segments(tc.in), "input %q", tc.in)
	}
}

func TestAnnounce_PrintsAndSpeaksWithPauses(t *testing.T) {
	sp := &fakeSpeaker{}
	a, buf, pauses := newTestAnnouncer(WithSpeaker(sp))

	a.Announce("First. Second! Third?")

	assert.Contains(t, buf.String(), "Jarvis:")
	assert.Contains(t, buf.String(), "First. Second! Third?")
	assert.Equal(t, []string{"First", "Second", "Third"}, sp.said)
	assert.Equal(t, []time.Duration{DefaultPause, DefaultPause}, *pauses)
}

func TestAnnounce_NoPauseForSingleSentence(t *testing.T) {
	sp := &fakeSpeaker{}
	a, _, pauses := newTestAnnouncer(WithSpeaker(sp))

	a.Announce("Opening Notepad.")

	assert.Equal(t, []string{"Opening Notepad"}, sp.said)
	assert.Empty(t, *pauses)
}

func TestAnnounce_SpeechFailureIsSwallowed(t *testing.T) {
	sp := &fakeSpeaker{err: errors.New("audio device busy"), failAt: 1}
	a, buf, pauses := newTestAnnouncer(WithSpeaker(sp))

	assert.NotPanics(t, func() { a.Announce("One. Two.") })
	assert.Contains(t, buf.String(), "One. Two.")
	assert.Len(t, sp.said, 1)
	assert.Empty(t, *pauses)
}

func TestAnnounce_WithoutSpeakerStillPrints(t *testing.T) {
	a, buf, _ := newTestAnnouncer()

	a.Announce("Goodbye.")

	assert.Contains(t, buf.String(), "Goodbye.")
}

func TestAnnounce_Mirror(t *testing.T) {
	m := &fakeMirror{err: errors.New("bus down")}
	a, buf, _ := newTestAnnouncer(WithMirror(m))

	a.Announce("Hello.")

	assert.Equal(t, []string{"Hello."}, m.got)
	assert.Contains(t, buf.String(), "Hello.")
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	Banner(&buf, "voice assistant")

	// a bytes.Buffer is not a terminal, so no escape codes
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "voice assistant")
	assert.Contains(t, buf.String(), `\___/`)
}
