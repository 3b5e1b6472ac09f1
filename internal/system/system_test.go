package system

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/failure"
)

func TestDefaultApps(t *testing.T) {
	assert.Equal(t, []string{"notepad.exe"}, DefaultApps("windows")[AppNotepad])
	assert.Equal(t, []string{"calc.exe"}, DefaultApps("windows")[AppCalculator])
	assert.Equal(t, []string{"open", "-a", "Calculator"}, DefaultApps("darwin")[AppCalculator])
	assert.Equal(t, []string{"gedit"}, DefaultApps("linux")[AppNotepad])
}

func TestLauncher_Launch(t *testing.T) {
	var started []string
	l := NewLauncher("kate --new-window", "")
	l.start = func(c *exec.Cmd) error {
		started = append(started, c.Args...)
		return nil
	}

	require.NoError(t, l.Launch(context.Background(), AppNotepad))
	assert.Equal(t, []string{"kate", "--new-window"}, started)

	err := l.Launch(context.Background(), "paint")
	assert.ErrorIs(t, err, ErrUnknownApp)
}

func TestLauncher_MissingProgram(t *testing.T) {
	l := NewLauncher("definitely-not-installed-jarvis-editor", "")

	err := l.Launch(context.Background(), AppNotepad)
	assert.ErrorIs(t, err, failure.ErrUnavailable)
}

func TestShutdownArgs(t *testing.T) {
	assert.Equal(t, []string{"shutdown", "/s", "/t", "0"}, ShutdownArgs("windows"))
	assert.Equal(t, []string{"shutdown", "-h", "now"}, ShutdownArgs("linux"))
}

func TestPower_ShutdownNow(t *testing.T) {
	var ran []string
	p := &Power{
		argv: []string{"shutdown", "-h", "now"},
		run: func(c *exec.Cmd) ([]byte, error) {
			ran = c.Args
			return []byte("must be root"), errors.New("exit status 1")
		},
	}

	err := p.ShutdownNow(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be root")
	assert.Equal(t, []string{"shutdown", "-h", "now"}, ran)
}

func TestYouTubeID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":           "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=42":                     "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/abcdefghijk":            "abcdefghijk",
		"https://m.youtube.com/watch?feature=share&v=A-b_C1234": "",
	}
	for link, want := range cases {
		got, err := YouTubeID(link)
		if want == "" {
			assert.ErrorIs(t, err, ErrInvalidURL, link)
			continue
		}
		require.NoError(t, err, link)
		assert.Equal(t, want, got)
	}

	for _, link := range []string{
		"https://vimeo.com/123456789",
		"--exec=touch /tmp/x #youtube.com/watch?v=dQw4w9WgXcQ",
		"https://evil.example/youtube.com/watch?v=dQw4w9WgXcQ",
		"file:///youtube.com/watch?v=dQw4w9WgXcQ",
	} {
		_, err := YouTubeID(link)
		assert.ErrorIs(t, err, ErrInvalidURL, link)
	}
}

func TestDownloader_OptionLikeLinkNeverReachesYtDlp(t *testing.T) {
	var argv []string
	d := &Downloader{
		bin: "yt-dlp",
		dir: t.TempDir(),
		run: func(c *exec.Cmd) ([]byte, error) {
			argv = c.Args
			return nil, nil
		},
	}

	err := d.Download(context.Background(), "--exec=touch /tmp/x #youtube.com/watch?v=dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Nil(t, argv)

	require.NoError(t, d.Download(context.Background(), "https://m.youtube.com/watch?v=dQw4w9WgXcQ&list=PL1&index=3"))
	require.GreaterOrEqual(t, len(argv), 2)
	assert.Equal(t, "--", argv[len(argv)-2])
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", argv[len(argv)-1])
	for _, a := range argv[1 : len(argv)-1] {
		assert.NotContains(t, a, "youtube.com", "the link appears only after --")
	}
}

func TestDownloader_Download(t *testing.T) {
	dir := t.TempDir()
	var args []string
	d := &Downloader{
		bin: "yt-dlp",
		dir: dir,
		run: func(c *exec.Cmd) ([]byte, error) {
			args = c.Args[1:]
			return nil, nil
		},
	}

	require.NoError(t, d.Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, []string{
		"-f", "best", "--no-playlist",
		"-o", filepath.Join(dir, "%(title)s-%(id)s.%(ext)s"),
		"--",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}, args)

	args = nil
	err := d.Download(context.Background(), "not a link")
	assert.ErrorIs(t, err, ErrInvalidURL)
	assert.Nil(t, args)
}
