package assistant

import (
	"context"
	"strings"

	"jarvis/internal/config"
	"jarvis/internal/failure"
	"jarvis/internal/weather"
)

type step struct {
	text string
	err  error
}

// scriptedInput replays steps and reports closed input afterwards.
type scriptedInput struct {
	steps []step
	calls int
}

func say(lines ...string) *scriptedInput {
	in := &scriptedInput{}
	for _, l := range lines {
		in.steps = append(in.steps, step{text: l})
	}
	return in
}

func (s *scriptedInput) Capture(ctx context.Context) (string, error) {
	i := s.calls
	s.calls++
	if i >= len(s.steps) {
		return "", failure.ErrInputClosed
	}
	return s.steps[i].text, s.steps[i].err
}

type recorder struct {
	lines []string
}

func (r *recorder) Announce(text string) { r.lines = append(r.lines, text) }

func (r *recorder) contains(text string) bool {
	for _, l := range r.lines {
		if l == text {
			return true
		}
	}
	return false
}

func (r *recorder) apologies() int {
	n := 0
	for _, l := range r.lines {
		if strings.HasPrefix(l, "Sorry") {
			n++
		}
	}
	return n
}

func (r *recorder) last() string {
	if len(r.lines) == 0 {
		return ""
	}
	return r.lines[len(r.lines)-1]
}

type fakeLauncher struct {
	launched []string
	err      error
	panicOn  string
}

func (f *fakeLauncher) Launch(_ context.Context, name string) error {
	if name == f.panicOn {
		panic("launcher exploded")
	}
	f.launched = append(f.launched, name)
	return f.err
}

type fakeNavigator struct {
	urls []string
	err  error
}

func (f *fakeNavigator) OpenURL(u string) error {
	f.urls = append(f.urls, u)
	return f.err
}

type fakeWeather struct {
	calls  int
	report weather.Report
	err    error
}

func (f *fakeWeather) Current(_ context.Context, _, _ string) (weather.Report, error) {
	f.calls++
	return f.report, f.err
}

type fakeAI struct {
	utterances []string
	answer     string
	err        error
}

func (f *fakeAI) Respond(_ context.Context, utterance string) (string, error) {
	f.utterances = append(f.utterances, utterance)
	return f.answer, f.err
}

type fakeSystem struct {
	calls int
	err   error
}

func (f *fakeSystem) ShutdownNow(context.Context) error {
	f.calls++
	return f.err
}

type fakeLogin struct {
	got []config.Login
	err error
}

func (f *fakeLogin) Login(_ context.Context, l config.Login) error {
	f.got = append(f.got, l)
	return f.err
}

type fakeDownloader struct {
	urls []string
	err  error
}

func (f *fakeDownloader) Download(_ context.Context, u string) error {
	f.urls = append(f.urls, u)
	return f.err
}

type fakeLines struct {
	line string
	err  error
}

func (f *fakeLines) ReadLine(context.Context, string) (string, error) { return f.line, f.err }

type harness struct {
	out      *recorder
	input    *scriptedInput
	launcher *fakeLauncher
	nav      *fakeNavigator
	weather  *fakeWeather
	ai       *fakeAI
	system   *fakeSystem
	login    *fakeLogin
	dl       *fakeDownloader
}

func newHarness(in *scriptedInput) *harness {
	return &harness{
		out:      &recorder{},
		input:    in,
		launcher: &fakeLauncher{},
		nav:      &fakeNavigator{},
		weather:  &fakeWeather{},
		ai:       &fakeAI{answer: "Sure."},
		system:   &fakeSystem{},
		login:    &fakeLogin{},
		dl:       &fakeDownloader{},
	}
}

func (h *harness) caps() Capabilities {
	return Capabilities{
		Input:      h.input,
		Launcher:   h.launcher,
		Navigator:  h.nav,
		Weather:    h.weather,
		AI:         h.ai,
		System:     h.system,
		Login:      h.login,
		Downloader: h.dl,
	}
}

func (h *harness) assistant(cfg config.Config) *Assistant {
	return New(cfg, h.out, h.caps())
}

func isGoodbye(s string) bool {
	for _, g := range Goodbyes {
		if g == s {
			return true
		}
	}
	return false
}
