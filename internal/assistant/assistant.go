package assistant

import (
	"context"
	"errors"
	log "log/slog"
	"math/rand/v2"

	"jarvis/internal/config"
	"jarvis/internal/failure"
)

type State int

const (
	StateIdle State = iota
	StateListening
	StateDispatching
	StateAnnouncing
	StateExited
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	case StateDispatching:
		return "dispatching"
	case StateAnnouncing:
		return "announcing"
	case StateExited:
		return "exited"
	}
	return "unknown"
}

var Greetings = []string{
	"Hello Sir! How may I assist you?",
	"Greetings Sir! What can I do for you today?",
	"Hi Sir! How can I help you?",
	"Welcome Sir! What's on your mind?",
}

var Goodbyes = []string{
	"Goodbye Sir! Have a great day.",
	"Farewell Sir! Until next time.",
	"See you later Sir!",
	"Logging off. Take care Sir!",
}

const msgUnexpected = "An unexpected error occurred."

type Assistant struct {
	cfg        config.Config
	out        Announcer
	caps       Capabilities
	classifier *Classifier
	handlers   map[Intent]func(ctx context.Context, utterance string)
	state      State
}

func New(cfg config.Config, out Announcer, caps Capabilities) *Assistant {
	a := &Assistant{
		cfg:        cfg,
		out:        out,
		caps:       caps,
		classifier: NewClassifier(cfg.ExitPriority),
	}
	a.handlers = map[Intent]func(context.Context, string){
		IntentNotepad:    a.openNotepad,
		IntentCalculator: a.openCalculator,
		IntentBrowser:    a.openBrowser,
		IntentShutdown:   func(ctx context.Context, _ string) { a.confirmShutdown(ctx) },
		IntentLogin:      a.login,
		IntentDownload:   a.downloadVideo,
		IntentYouTube:    a.searchYouTube,
		IntentWeather:    a.reportWeather,
		IntentNone:       a.askAI,
	}
	return a
}

func (a *Assistant) State() State { return a.state }

func (a *Assistant) setState(s State) {
	if a.state == s {
		return
	}
	log.Debug("state", "from", a.state, "to", s)
	a.state = s
}

// Run greets, then loops capture → classify → handle until an exit phrase,
// an interrupt (ctx cancellation) or closed input.
func (a *Assistant) Run(ctx context.Context) error {
	a.setState(StateAnnouncing)
	a.out.Announce(Greetings[rand.IntN(len(Greetings))])

	for {
		a.setState(StateIdle)
		if ctx.Err() != nil {
			log.Info("interrupted")
			a.farewell()
			return nil
		}

		a.setState(StateListening)
		text, err := a.caps.Input.Capture(ctx)
		if err != nil {
			switch {
			case ctx.Err() != nil || errors.Is(err, context.Canceled):
				log.Info("interrupted during capture")
				a.farewell()
				return nil
			case errors.Is(err, failure.ErrInputClosed):
				log.Info("input closed")
				a.farewell()
				return nil
			default:
				log.Warn("capture failed", "err", err)
				text = ""
			}
		}

		if a.Handle(ctx, text) {
			return nil
		}
	}
}

// Handle runs one turn and reports whether the session should end.
// Empty utterances are ignored.
func (a *Assistant) Handle(ctx context.Context, text string) (exit bool) {
	utterance := Normalize(text)
	if utterance == "" {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("turn failed", "panic", r, "utterance", utterance)
			a.out.Announce(msgUnexpected)
			exit = false
		}
	}()

	a.setState(StateDispatching)
	intent := a.classifier.Classify(utterance)
	log.Info("dispatch", "utterance", utterance, "intent", intent)

	if intent == IntentExit {
		a.farewell()
		return true
	}

	a.setState(StateAnnouncing)
	a.handlers[intent](ctx, utterance)
	return false
}

func (a *Assistant) farewell() {
	a.setState(StateAnnouncing)
	a.out.Announce(Goodbyes[rand.IntN(len(Goodbyes))])
	a.setState(StateExited)
}

// ask announces prompt and captures exactly one reply. Errors count as no reply.
func (a *Assistant) ask(ctx context.Context, prompt string) string {
	a.out.Announce(prompt)
	reply, err := a.caps.Input.Capture(ctx)
	if err != nil {
		log.Warn("follow-up capture failed", "err", err)
		return ""
	}
	return Normalize(reply)
}
