package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/spf13/pflag"

	"github.com/lmittmann/tint"
	log "log/slog"

	"jarvis/internal/announce"
	"jarvis/internal/assistant"
	"jarvis/internal/audio"
	"jarvis/internal/browser"
	"jarvis/internal/bus"
	"jarvis/internal/config"
	"jarvis/internal/input"
	"jarvis/internal/ipc"
	"jarvis/internal/llm"
	"jarvis/internal/notify"
	"jarvis/internal/proxy"
	"jarvis/internal/system"
	"jarvis/internal/tts"
	"jarvis/internal/weather"
	"jarvis/pkg/audioconv"
	"jarvis/pkg/stt"
)

var logLevelMap = map[string]log.Level{
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

// biases whisper towards the command vocabulary
const commandVocabulary = "Jarvis, open notepad, calculator, browser, weather, YouTube, download video, login, shutdown, exit."

type options struct {
	mode    string
	command string
	audio   string
	proxy   string
	mute    bool
}

func main() {
	envFile := cli.StringP("env", "e", ".env", "Env file path")
	logLevel := cli.StringP("log", "l", "info", "Log level")
	proxyAddr := cli.StringP("proxy", "p", "", "Socks proxy address for weather and AI requests")
	mode := cli.StringP("mode", "m", "voice", "Input mode: voice, keyboard or socket")
	command := cli.StringP("command", "c", "", "Handle one typed command and exit")
	audioFile := cli.StringP("audio", "a", "", "Handle one recorded command (wav, mp3, ogg) and exit")
	socketPath := cli.StringP("socket", "s", "", "Control socket path for socket mode")
	mute := cli.Bool("mute", false, "Print announcements without speaking them")
	cli.Parse()

	level, ok := logLevelMap[*logLevel]
	if !ok {
		level = log.LevelInfo
	}
	log.SetDefault(log.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	cfg := config.Load(*envFile)
	if *socketPath != "" {
		cfg.SocketPath = *socketPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, cfg, options{
		mode:    *mode,
		command: *command,
		audio:   *audioFile,
		proxy:   *proxyAddr,
		mute:    *mute,
	})
	if err != nil {
		log.Error("Jarvis stopped", "err", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opt options) error {
	announce.Banner(os.Stdout, "your desktop voice assistant")

	httpClient, err := proxy.NewSocksClient(opt.proxy, 60*time.Second)
	if err != nil {
		return err
	}

	out, closeOut := newAnnouncer(cfg, opt.mute)
	defer closeOut()

	caps := assistant.Capabilities{
		Launcher:  system.NewLauncher(cfg.NotepadCmd, cfg.CalculatorCmd),
		Navigator: browser.NewNavigator(),
		Weather:   weather.NewClient(httpClient),
		System:    system.NewPower(),
		Login:     browser.NewAutomator(),
	}

	if d, err := system.NewDownloader(cfg.DownloadDir); err != nil {
		log.Info("Video download disabled", "err", err)
	} else {
		caps.Downloader = d
	}

	if c, err := llm.New(ctx, cfg, httpClient); err != nil {
		log.Warn("AI fallback disabled", "err", err)
	} else {
		caps.AI = llm.NewFallback(c)
	}

	closeIn, err := wireInput(ctx, cfg, opt, &caps)
	if err != nil {
		return err
	}
	defer closeIn()

	log.Info("Jarvis ready",
		"mode", opt.mode,
		"ai", caps.AI != nil,
		"download", caps.Downloader != nil,
		"exit_priority", cfg.ExitPriority,
	)

	return assistant.New(cfg, out, caps).Run(ctx)
}

func newAnnouncer(cfg config.Config, mute bool) (*announce.Announcer, func()) {
	var (
		opts    []announce.Option
		closers []func()
	)

	if !mute {
		eng, err := tts.New(tts.Options{
			Voice:  cfg.TTSVoice,
			Rate:   cfg.TTSRate,
			Volume: cfg.TTSVolume,
		})
		if err != nil {
			log.Warn("Speech output disabled", "err", err)
		} else {
			opts = append(opts, announce.WithSpeaker(eng))
			closers = append(closers, eng.Close)
		}
	}

	if cfg.BusURL != "" {
		b, err := bus.New(cfg.BusURL)
		if err != nil {
			log.Warn("Bus mirror disabled", "err", err)
		} else {
			opts = append(opts, announce.WithMirror(b))
			closers = append(closers, func() { _ = b.Close() })
		}
	}

	return announce.New(opts...), func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

func wireInput(ctx context.Context, cfg config.Config, opt options, caps *assistant.Capabilities) (func(), error) {
	kb := input.NewKeyboard(os.Stdin, os.Stdout)
	caps.Lines = kb
	noop := func() {}

	switch {
	case opt.command != "":
		caps.Input = input.NewScript(opt.command)
		return noop, nil

	case opt.audio != "":
		text, err := transcribeFile(ctx, cfg, opt.audio)
		if err != nil {
			return nil, fmt.Errorf("transcribe %s: %w", opt.audio, err)
		}
		log.Info("Transcribed", "file", opt.audio, "text", text)
		caps.Input = input.NewScript(text)
		return noop, nil
	}

	switch opt.mode {
	case "keyboard":
		caps.Input = kb
		return noop, nil

	case "socket":
		l, err := ipc.Listen(cfg.SocketPath)
		if err != nil {
			return nil, err
		}
		log.Info("Listening for commands", "socket", l.Path())
		s := input.NewSocket(l, cfg.ListenTimeout)
		caps.Input = s
		caps.Lines = s
		return func() { _ = l.Close() }, nil

	case "voice":
		v, closeVoice, err := newVoice(cfg, kb)
		if err != nil {
			log.Warn("Voice input unavailable, using keyboard", "err", err)
			caps.Input = kb
			return noop, nil
		}
		caps.Input = v
		return closeVoice, nil
	}

	return nil, fmt.Errorf("unknown input mode %q", opt.mode)
}

func newVoice(cfg config.Config, kb *input.Keyboard) (*input.Voice, func(), error) {
	rec := audio.NewRecorder()
	if err := rec.Init(); err != nil {
		return nil, nil, fmt.Errorf("init audio: %w", err)
	}

	tr, err := stt.NewTranscriber(cfg.WhisperModel, stt.Options{InitialPrompt: commandVocabulary})
	if err != nil {
		rec.Close()
		return nil, nil, fmt.Errorf("init whisper: %w", err)
	}

	var vopts []input.VoiceOption
	if cfg.Chime != "" {
		vopts = append(vopts, input.WithCue(notify.NewChime(cfg.Chime)))
	}
	if cfg.Duck {
		vopts = append(vopts, input.WithDucker(audio.NewDucker([]string{"jarvis", "espeak"}, 0.3, 300*time.Millisecond)))
	}

	v := input.NewVoice(rec, tr, kb, os.Stdout, cfg.ListenTimeout, cfg.PhraseLimit, vopts...)
	return v, func() {
		_ = tr.Close()
		rec.Close()
	}, nil
}

func transcribeFile(ctx context.Context, cfg config.Config, path string) (string, error) {
	pcm, err := audioconv.DecodeFile(path, 30*audioconv.TargetRate)
	if err != nil {
		return "", err
	}

	tr, err := stt.NewTranscriber(cfg.WhisperModel, stt.Options{InitialPrompt: commandVocabulary})
	if err != nil {
		return "", err
	}
	defer tr.Close()

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	text, err := tr.Transcribe(ctx, pcm)
	if err != nil {
		return "", err
	}
	text = input.CleanTranscript(text)
	if text == "" {
		return "", errors.New("no speech in file")
	}
	return text, nil
}
