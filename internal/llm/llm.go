package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"jarvis/internal/config"
	"jarvis/internal/failure"
)

// BrevityPrefix is prepended to every fallback prompt to keep answers short
// enough to be spoken.
const BrevityPrefix = "in short and simple manner "

type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Fallback answers utterances no command rule matched.
type Fallback struct {
	completer Completer
}

func NewFallback(c Completer) *Fallback {
	return &Fallback{completer: c}
}

func (f *Fallback) Respond(ctx context.Context, utterance string) (string, error) {
	text, err := f.completer.Complete(ctx, BrevityPrefix+utterance)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", failure.ErrEmptyResponse
	}
	return text, nil
}

// New picks the provider named in cfg, or the first one with a credential.
func New(ctx context.Context, cfg config.Config, httpClient *http.Client) (Completer, error) {
	provider := cfg.AIProvider
	if provider == "" {
		switch {
		case cfg.GeminiAPIKey != "":
			provider = "gemini"
		case cfg.OpenAIAPIKey != "":
			provider = "openai"
		default:
			return nil, fmt.Errorf("no ai credentials: %w", failure.ErrNotConfigured)
		}
	}

	switch provider {
	case "gemini":
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.AIModel, httpClient)
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.AIModel, httpClient)
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", provider)
	}
}
