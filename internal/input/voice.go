package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"regexp"
	"strings"
	"time"

	"jarvis/internal/failure"
)

type Recorder interface {
	Listen(timeout, phraseLimit time.Duration) ([]float32, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, pcm []float32) (string, error)
}

type Cue interface {
	Play() error
}

type Ducker interface {
	Duck(ctx context.Context) error
	Restore(ctx context.Context) error
}

// Voice captures one spoken phrase per call and transcribes it. When the
// microphone or the recognizer fails, the turn is read from the keyboard.
type Voice struct {
	rec         Recorder
	stt         Transcriber
	fallback    *Keyboard
	out         io.Writer
	timeout     time.Duration
	phraseLimit time.Duration
	cue         Cue
	ducker      Ducker
}

type VoiceOption func(*Voice)

func WithCue(c Cue) VoiceOption { return func(v *Voice) { v.cue = c } }

func WithDucker(d Ducker) VoiceOption { return func(v *Voice) { v.ducker = d } }

func NewVoice(rec Recorder, stt Transcriber, fallback *Keyboard, out io.Writer,
	timeout, phraseLimit time.Duration, opts ...VoiceOption,
) *Voice {
	v := &Voice{
		rec:         rec,
		stt:         stt,
		fallback:    fallback,
		out:         out,
		timeout:     timeout,
		phraseLimit: phraseLimit,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Voice) Capture(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if v.cue != nil {
		if err := v.cue.Play(); err != nil {
			log.Debug("Chime failed", "err", err)
		}
	}
	fmt.Fprintln(v.out, "Listening...")

	pcm, err := v.listen(ctx)
	if errors.Is(err, failure.ErrNoSpeech) {
		return "", nil
	}
	if err != nil {
		return v.fallBack(ctx, "record", err)
	}

	text, err := v.stt.Transcribe(ctx, pcm)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return v.fallBack(ctx, "transcribe", err)
	}

	text = CleanTranscript(text)
	if text == "" {
		return "", nil
	}
	fmt.Fprintf(v.out, "Heard: %s\n", text)
	return strings.ToLower(text), nil
}

func (v *Voice) listen(ctx context.Context) ([]float32, error) {
	if v.ducker != nil {
		if err := v.ducker.Duck(ctx); err != nil {
			log.Warn("Failed to duck audio", "err", err)
		}
		defer func() {
			if err := v.ducker.Restore(context.Background()); err != nil {
				log.Warn("Failed to restore audio", "err", err)
			}
		}()
	}
	return v.rec.Listen(v.timeout, v.phraseLimit)
}

func (v *Voice) fallBack(ctx context.Context, stage string, err error) (string, error) {
	log.Warn("Voice capture failed", "stage", stage, "err", err)
	if v.fallback == nil {
		return "", err
	}
	fmt.Fprintln(v.out, "Voice input unavailable, please type your command.")
	return v.fallback.Capture(ctx)
}

var annotationRe = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)|\*[^*]*\*`)

// CleanTranscript drops recognizer annotations such as [BLANK_AUDIO] or
// (music) and collapses whitespace.
func CleanTranscript(s string) string {
	s = annotationRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}
