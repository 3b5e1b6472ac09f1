package config

import (
	log "log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultCity         = "Indore"
	DefaultTTSRate      = 140
	DefaultTTSVolume    = 1.0
	DefaultLoginBrowser = "edge"
	DefaultSocketPath   = "/tmp/jarvis.sock"
	DefaultWhisperModel = "third_party/whisper.cpp/models/ggml-base.en.bin"
)

type ExitPriority string

const (
	ExitFirst    ExitPriority = "exit-first"
	ActionsFirst ExitPriority = "actions-first"
)

type Login struct {
	URL             string
	Username        string
	Password        string
	UsernameFieldID string
	PasswordFieldID string
	Browser         string
}

// Configured reports whether url and credentials are all present.
func (l Login) Configured() bool {
	return l.URL != "" && l.Username != "" && l.Password != ""
}

type Config struct {
	WeatherAPIKey string
	City          string

	AIProvider   string
	AIModel      string
	GeminiAPIKey string
	OpenAIAPIKey string

	Login Login

	TTSRate   int
	TTSVolume float64
	TTSVoice  string

	ExitPriority ExitPriority

	ListenTimeout time.Duration
	PhraseLimit   time.Duration
	WhisperModel  string
	Chime         string
	Duck          bool

	NotepadCmd    string
	CalculatorCmd string
	DownloadDir   string

	SocketPath string
	BusURL     string
}

// Load reads the optional env file, then the process environment.
// Every key is optional; missing values fall back to documented defaults.
func Load(envFile string) Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Debug("env file not loaded", "path", envFile, "err", err)
		}
	}

	cfg := Config{
		WeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		City:          str("CITY_NAME", DefaultCity),

		AIProvider:   strings.ToLower(os.Getenv("JARVIS_AI_PROVIDER")),
		AIModel:      os.Getenv("JARVIS_AI_MODEL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),

		Login: Login{
			URL:             os.Getenv("LOGIN_URL"),
			Username:        os.Getenv("LOGIN_USERNAME"),
			Password:        os.Getenv("LOGIN_PASSWORD"),
			UsernameFieldID: str("LOGIN_USERNAME_FIELD_ID", "username"),
			PasswordFieldID: str("LOGIN_PASSWORD_FIELD_ID", "password"),
			Browser:         strings.ToLower(str("LOGIN_BROWSER", DefaultLoginBrowser)),
		},

		// FRIDAY_* are the names older setups used
		TTSRate:   integer("JARVIS_TTS_RATE", integer("FRIDAY_TTS_RATE", DefaultTTSRate)),
		TTSVolume: float("JARVIS_TTS_VOLUME", float("FRIDAY_TTS_VOLUME", DefaultTTSVolume)),
		TTSVoice:  str("JARVIS_TTS_VOICE", "en"),

		ExitPriority: ExitFirst,

		ListenTimeout: duration("JARVIS_LISTEN_TIMEOUT", 6*time.Second),
		PhraseLimit:   duration("JARVIS_PHRASE_LIMIT", 8*time.Second),
		WhisperModel:  str("JARVIS_WHISPER_MODEL", DefaultWhisperModel),
		Chime:         os.Getenv("JARVIS_CHIME"),
		Duck:          boolean("JARVIS_DUCK", false),

		NotepadCmd:    os.Getenv("JARVIS_NOTEPAD_CMD"),
		CalculatorCmd: os.Getenv("JARVIS_CALCULATOR_CMD"),
		DownloadDir:   str("JARVIS_DOWNLOAD_DIR", "."),

		SocketPath: str("JARVIS_SOCKET", DefaultSocketPath),
		BusURL:     os.Getenv("JARVIS_BUS_URL"),
	}

	switch p := ExitPriority(strings.ToLower(os.Getenv("JARVIS_EXIT_PRIORITY"))); p {
	case "", ExitFirst:
	case ActionsFirst:
		cfg.ExitPriority = p
	default:
		log.Warn("unknown exit priority, using default", "value", p, "default", ExitFirst)
	}

	return cfg
}

func str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("invalid integer in environment", "key", key, "value", v)
		return def
	}
	return n
}

func float(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn("invalid number in environment", "key", key, "value", v)
		return def
	}
	return f
}

func boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn("invalid bool in environment", "key", key, "value", v)
		return def
	}
	return b
}

func duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn("invalid duration in environment", "key", key, "value", v)
		return def
	}
	return d
}
