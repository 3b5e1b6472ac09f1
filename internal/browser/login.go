package browser

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"jarvis/internal/config"
	"jarvis/internal/failure"
)

const (
	loginTimeout = 60 * time.Second
	settleDelay  = 2 * time.Second
)

var errNoBrowser = errors.New("no browser executable found")

// Candidates lists executables for an edge or chrome choice on goos,
// most specific first. Anything other than "chrome" means edge.
func Candidates(choice, goos string) []string {
	switch goos {
	case "windows":
		if choice == "chrome" {
			return []string{
				filepath.Join(os.Getenv("ProgramFiles"), `Google\Chrome\Application\chrome.exe`),
				filepath.Join(os.Getenv("ProgramFiles(x86)"), `Google\Chrome\Application\chrome.exe`),
				"chrome.exe",
			}
		}
		return []string{
			filepath.Join(os.Getenv("ProgramFiles(x86)"), `Microsoft\Edge\Application\msedge.exe`),
			filepath.Join(os.Getenv("ProgramFiles"), `Microsoft\Edge\Application\msedge.exe`),
			"msedge.exe",
		}
	case "darwin":
		if choice == "chrome" {
			return []string{"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"}
		}
		return []string{"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge"}
	default:
		if choice == "chrome" {
			return []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"}
		}
		return []string{"microsoft-edge", "microsoft-edge-stable", "msedge"}
	}
}

// Automator drives a visible Chromium-family browser through a login form.
type Automator struct {
	lookPath func(string) (string, error)
	settle   time.Duration
}

func NewAutomator() *Automator {
	return &Automator{lookPath: exec.LookPath, settle: settleDelay}
}

func (a *Automator) findBrowser(choice string) (string, error) {
	for _, c := range Candidates(choice, runtime.GOOS) {
		if p, err := a.lookPath(c); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s: %w", choice, errNoBrowser)
}

// Login opens the page, fills both fields by element id and submits with
// Enter. Failing to start the browser is reported as failure.ErrUnavailable.
func (a *Automator) Login(ctx context.Context, l config.Login) error {
	if !l.Configured() {
		return failure.ErrNotConfigured
	}

	path, err := a.findBrowser(l.Browser)
	if err != nil {
		return errors.Join(err, failure.ErrUnavailable)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(path),
		chromedp.Flag("headless", false),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	bctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if err := chromedp.Run(bctx); err != nil {
		log.Error("Browser failed to start", "browser", path, "err", err)
		return fmt.Errorf("start browser: %w", errors.Join(err, failure.ErrUnavailable))
	}

	tctx, cancelTimeout := context.WithTimeout(bctx, loginTimeout)
	defer cancelTimeout()

	err = chromedp.Run(tctx,
		chromedp.Navigate(l.URL),
		chromedp.WaitVisible(l.UsernameFieldID, chromedp.ByID),
		chromedp.Clear(l.UsernameFieldID, chromedp.ByID),
		chromedp.SendKeys(l.UsernameFieldID, l.Username, chromedp.ByID),
		chromedp.Clear(l.PasswordFieldID, chromedp.ByID),
		chromedp.SendKeys(l.PasswordFieldID, l.Password, chromedp.ByID),
		chromedp.SendKeys(l.PasswordFieldID, kb.Enter, chromedp.ByID),
		chromedp.Sleep(a.settle),
	)
	if err != nil {
		return fmt.Errorf("login flow: %w", err)
	}
	return nil
}
