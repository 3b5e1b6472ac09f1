package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/config"
	"jarvis/internal/failure"
)

func TestNavigator_OpenURL(t *testing.T) {
	var opened string
	n := &Navigator{open: func(u string) error { opened = u; return nil }}

	require.NoError(t, n.OpenURL("about:blank"))
	assert.Equal(t, "about:blank", opened)

	n.open = func(string) error { return errors.New("xdg-open: not found") }
	assert.Error(t, n.OpenURL("about:blank"))
}

func TestCandidates(t *testing.T) {
	assert.Equal(t, []string{"microsoft-edge", "microsoft-edge-stable", "msedge"}, Candidates("edge", "linux"))
	assert.Equal(t, []string{"microsoft-edge", "microsoft-edge-stable", "msedge"}, Candidates("firefox", "linux"))
	assert.Contains(t, Candidates("chrome", "linux"), "google-chrome")
	assert.Equal(t, "msedge.exe", Candidates("edge", "windows")[2])
	assert.Len(t, Candidates("chrome", "darwin"), 1)
}

var creds = config.Login{
	URL:             "https://example.com/login",
	Username:        "tony",
	Password:        "stark",
	UsernameFieldID: "username",
	PasswordFieldID: "password",
	Browser:         "chrome",
}

func TestAutomator_NotConfigured(t *testing.T) {
	a := NewAutomator()

	err := a.Login(context.Background(), config.Login{URL: "https://example.com"})
	assert.ErrorIs(t, err, failure.ErrNotConfigured)
}

func TestAutomator_NoBrowserIsUnavailable(t *testing.T) {
	a := &Automator{lookPath: func(string) (string, error) { return "", errors.New("not found") }}

	err := a.Login(context.Background(), creds)
	assert.ErrorIs(t, err, failure.ErrUnavailable)
	assert.ErrorIs(t, err, errNoBrowser)
}
