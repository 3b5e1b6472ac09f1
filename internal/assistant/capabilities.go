package assistant

import (
	"context"

	"jarvis/internal/config"
	"jarvis/internal/weather"
)

// Input yields one utterance per call. Silence or a capture timeout is
// reported as "", nil. failure.ErrInputClosed or a context error ends the session.
type Input interface {
	Capture(ctx context.Context) (string, error)
}

// LineReader reads raw, case-preserving text such as a URL.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

type Announcer interface {
	Announce(text string)
}

type Launcher interface {
	Launch(ctx context.Context, name string) error
}

type Navigator interface {
	OpenURL(url string) error
}

type WeatherProvider interface {
	Current(ctx context.Context, city, apiKey string) (weather.Report, error)
}

type Fallback interface {
	Respond(ctx context.Context, utterance string) (string, error)
}

type SystemControl interface {
	ShutdownNow(ctx context.Context) error
}

type LoginAutomator interface {
	Login(ctx context.Context, login config.Login) error
}

type Downloader interface {
	Download(ctx context.Context, url string) error
}

// Capabilities are resolved once at startup. A nil field means the
// capability is unavailable and its handler answers accordingly.
type Capabilities struct {
	Input      Input
	Lines      LineReader
	Launcher   Launcher
	Navigator  Navigator
	Weather    WeatherProvider
	AI         Fallback
	System     SystemControl
	Login      LoginAutomator
	Downloader Downloader
}
