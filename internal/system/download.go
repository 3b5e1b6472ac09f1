package system

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"jarvis/internal/failure"
)

var ErrInvalidURL = errors.New("invalid YouTube URL")

const watchURL = "https://www.youtube.com/watch?v="

var youTubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:v=|/shorts/|/embed/|/live/)([0-9A-Za-z_-]{11})`),
}

// YouTubeID extracts the 11 character video id from an http(s) watch,
// short or youtu.be link.
func YouTubeID(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", ErrInvalidURL
	}
	switch strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.") {
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be":
	default:
		return "", ErrInvalidURL
	}

	link = u.Host + u.EscapedPath() + "?" + u.RawQuery
	for _, re := range youTubeIDPatterns {
		if m := re.FindStringSubmatch(link); len(m) > 1 {
			return m[1], nil
		}
	}
	return "", ErrInvalidURL
}

// Downloader fetches the best single-file stream with yt-dlp.
type Downloader struct {
	bin string
	dir string
	run func(*exec.Cmd) ([]byte, error)
}

// NewDownloader fails with failure.ErrUnavailable when yt-dlp is not on PATH.
func NewDownloader(dir string) (*Downloader, error) {
	bin, err := exec.LookPath("yt-dlp")
	if err != nil {
		return nil, fmt.Errorf("yt-dlp: %w", errors.Join(err, failure.ErrUnavailable))
	}
	if dir == "" {
		dir = "."
	}
	return &Downloader{
		bin: bin,
		dir: dir,
		run: func(c *exec.Cmd) ([]byte, error) { return c.CombinedOutput() },
	}, nil
}

func (d *Downloader) Download(ctx context.Context, link string) error {
	id, err := YouTubeID(link)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return err
	}

	// only the validated id reaches yt-dlp, never the raw input
	args := []string{
		"-f", "best",
		"--no-playlist",
		"-o", filepath.Join(d.dir, "%(title)s-%(id)s.%(ext)s"),
		"--",
		watchURL + id,
	}
	cmd := exec.CommandContext(ctx, d.bin, args...)
	out, err := d.run(cmd)
	if err != nil {
		log.Error("yt-dlp failed", "id", id, "output", string(out))
		return fmt.Errorf("download %s: %w", id, err)
	}
	log.Info("Downloaded video", "id", id, "dir", d.dir)
	return nil
}
