package assistant

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/url"
	"strings"

	"jarvis/internal/failure"
)

const youtubeResults = "https://www.youtube.com/results?search_query="

func (a *Assistant) openNotepad(ctx context.Context, _ string) {
	a.launch(ctx, "notepad", "Opening Notepad.", "Sorry, I failed to open Notepad.")
}

func (a *Assistant) openCalculator(ctx context.Context, _ string) {
	a.launch(ctx, "calculator", "Opening Calculator.", "Sorry, I failed to open the calculator.")
}

func (a *Assistant) launch(ctx context.Context, name, opening, failed string) {
	a.out.Announce(opening)
	if a.caps.Launcher == nil {
		a.out.Announce(failed)
		return
	}
	if err := a.caps.Launcher.Launch(ctx, name); err != nil {
		log.Error("launch failed", "app", name, "err", err)
		a.out.Announce(failed)
	}
}

func (a *Assistant) openBrowser(_ context.Context, _ string) {
	a.out.Announce("Opening browser.")
	if a.caps.Navigator == nil {
		a.out.Announce("Sorry, I failed to open the browser.")
		return
	}
	if err := a.caps.Navigator.OpenURL("about:blank"); err != nil {
		log.Error("open browser failed", "err", err)
		a.out.Announce("Sorry, I failed to open the browser.")
	}
}

// SearchQuery strips the command words from a youtube utterance.
func SearchQuery(utterance string) string {
	q := strings.ReplaceAll(utterance, "youtube", "")
	q = strings.ReplaceAll(q, "search for", "")
	return strings.Join(strings.Fields(q), " ")
}

// YouTubeSearchURL builds the results url; spaces become '+'.
func YouTubeSearchURL(query string) string {
	return youtubeResults + url.QueryEscape(strings.Join(strings.Fields(query), " "))
}

func (a *Assistant) searchYouTube(ctx context.Context, utterance string) {
	query := SearchQuery(utterance)
	if query == "" {
		query = a.ask(ctx, "What do you want to watch?")
		if query == "" {
			return
		}
	}

	a.out.Announce(fmt.Sprintf("Searching for %s on YouTube.", query))
	if a.caps.Navigator == nil {
		a.out.Announce("Sorry, I failed to open YouTube.")
		return
	}
	if err := a.caps.Navigator.OpenURL(YouTubeSearchURL(query)); err != nil {
		log.Error("youtube search failed", "query", query, "err", err)
		a.out.Announce("Sorry, I failed to open YouTube.")
	}
}

func (a *Assistant) downloadVideo(ctx context.Context, _ string) {
	if a.caps.Downloader == nil {
		a.out.Announce("YouTube download requires yt-dlp. Please install it first.")
		return
	}

	a.out.Announce("Please provide the YouTube URL.")
	link, err := a.readURL(ctx)
	if err != nil {
		log.Warn("reading url failed", "err", err)
	}
	if link == "" {
		a.out.Announce("I didn't catch the URL. Please try again.")
		return
	}

	a.out.Announce("Starting download. This may take a moment.")
	if err := a.caps.Downloader.Download(ctx, link); err != nil {
		log.Error("youtube download failed", "url", link, "err", err)
		a.out.Announce("Sorry, I could not download that video.")
		return
	}
	a.out.Announce("Download completed.")
}

func (a *Assistant) readURL(ctx context.Context) (string, error) {
	if a.caps.Lines != nil {
		s, err := a.caps.Lines.ReadLine(ctx, "YouTube URL> ")
		return strings.TrimSpace(s), err
	}
	s, err := a.caps.Input.Capture(ctx)
	return strings.TrimSpace(s), err
}

func (a *Assistant) reportWeather(ctx context.Context, _ string) {
	if a.cfg.WeatherAPIKey == "" {
		a.out.Announce("The OpenWeather API key is not configured.")
		return
	}
	if a.caps.Weather == nil {
		a.out.Announce("Weather lookup is not available.")
		return
	}

	a.out.Announce("Fetching the current weather.")
	report, err := a.caps.Weather.Current(ctx, a.cfg.City, a.cfg.WeatherAPIKey)
	if err != nil {
		log.Error("weather fetch failed", "city", a.cfg.City, "err", err)
		a.out.Announce("Sorry, I couldn't fetch the weather information.")
		return
	}
	a.out.Announce(report.Message(a.cfg.City))
}

func (a *Assistant) login(ctx context.Context, _ string) {
	if !a.cfg.Login.Configured() {
		a.out.Announce("Login is not configured. Set LOGIN_URL, LOGIN_USERNAME, and LOGIN_PASSWORD.")
		return
	}
	if a.caps.Login == nil {
		a.out.Announce("Browser automation is not available.")
		return
	}

	a.out.Announce("Attempting to log in.")
	err := a.caps.Login.Login(ctx, a.cfg.Login)
	switch {
	case err == nil:
		a.out.Announce("Login attempted.")
	case errors.Is(err, failure.ErrUnavailable):
		log.Error("webdriver failed to start", "browser", a.cfg.Login.Browser, "err", err)
		a.out.Announce("Could not start the browser for login.")
	default:
		log.Error("login flow failed", "err", err)
		a.out.Announce("Login failed.")
	}
}

func (a *Assistant) askAI(ctx context.Context, utterance string) {
	if a.caps.AI == nil {
		a.out.Announce("Sorry, I didn't understand that.")
		return
	}

	a.out.Announce("Thinking...")
	answer, err := a.caps.AI.Respond(ctx, utterance)
	switch {
	case err == nil:
		a.out.Announce(answer)
	case errors.Is(err, failure.ErrEmptyResponse):
		log.Warn("ai returned no text", "utterance", utterance)
		a.out.Announce("Sorry, I couldn't generate a response for that.")
	default:
		log.Error("ai request failed", "err", err)
		a.out.Announce("Sorry, there was an error with the AI service.")
	}
}
