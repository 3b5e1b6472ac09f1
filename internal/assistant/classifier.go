package assistant

import (
	"strings"

	"jarvis/internal/config"
)

type Intent int

const (
	IntentNone Intent = iota
	IntentExit
	IntentNotepad
	IntentCalculator
	IntentBrowser
	IntentShutdown
	IntentLogin
	IntentDownload
	IntentYouTube
	IntentWeather
)

var intentNames = map[Intent]string{
	IntentNone:       "none",
	IntentExit:       "exit",
	IntentNotepad:    "notepad",
	IntentCalculator: "calculator",
	IntentBrowser:    "browser",
	IntentShutdown:   "shutdown",
	IntentLogin:      "login",
	IntentDownload:   "download",
	IntentYouTube:    "youtube",
	IntentWeather:    "weather",
}

func (i Intent) String() string {
	if s, ok := intentNames[i]; ok {
		return s
	}
	return "unknown"
}

// Rule pairs a predicate over a normalized utterance with the intent it selects.
type Rule struct {
	Intent Intent
	Match  func(string) bool
}

func containsAny(words ...string) func(string) bool {
	return func(s string) bool {
		for _, w := range words {
			if strings.Contains(s, w) {
				return true
			}
		}
		return false
	}
}

var (
	exitRule       = Rule{IntentExit, containsAny("exit", "quit", "close")}
	notepadRule    = Rule{IntentNotepad, containsAny("notepad")}
	calculatorRule = Rule{IntentCalculator, containsAny("calculator", "calc")}
	browserRule    = Rule{IntentBrowser, containsAny("browser", "edge", "chrome")}
	shutdownRule   = Rule{IntentShutdown, containsAny("shutdown")}
	loginRule      = Rule{IntentLogin, containsAny("login")}

	// download must be tested before youtube so "download ... youtube video"
	// is never routed to search.
	downloadRule = Rule{IntentDownload, func(s string) bool {
		return strings.Contains(s, "download") && strings.Contains(s, "video")
	}}
	youtubeRule = Rule{IntentYouTube, func(s string) bool {
		return strings.Contains(s, "youtube") && !strings.Contains(s, "download")
	}}
	weatherRule = Rule{IntentWeather, containsAny("weather")}
)

// Rules returns the ordered rule list for the given exit priority.
func Rules(priority config.ExitPriority) []Rule {
	tail := []Rule{loginRule, downloadRule, youtubeRule, weatherRule}
	apps := []Rule{notepadRule, calculatorRule, browserRule, shutdownRule}

	rules := make([]Rule, 0, 1+len(apps)+len(tail))
	if priority == config.ActionsFirst {
		rules = append(rules, apps...)
		rules = append(rules, exitRule)
	} else {
		rules = append(rules, exitRule)
		rules = append(rules, apps...)
	}
	return append(rules, tail...)
}

// Classifier selects at most one intent per utterance. First match wins.
type Classifier struct {
	rules []Rule
}

func NewClassifier(priority config.ExitPriority) *Classifier {
	return &Classifier{rules: Rules(priority)}
}

// Classify expects an utterance already passed through Normalize.
func (c *Classifier) Classify(utterance string) Intent {
	if utterance == "" {
		return IntentNone
	}
	for _, r := range c.rules {
		if r.Match(utterance) {
			return r.Intent
		}
	}
	return IntentNone
}

// Normalize lower-cases and trims an utterance.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
