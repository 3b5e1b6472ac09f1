package system

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"os/exec"
	"runtime"
	"strings"

	"jarvis/internal/failure"
)

const (
	AppNotepad    = "notepad"
	AppCalculator = "calculator"
)

var ErrUnknownApp = errors.New("unknown application")

// DefaultApps returns the desktop programs used for goos.
func DefaultApps(goos string) map[string][]string {
	switch goos {
	case "windows":
		return map[string][]string{
			AppNotepad:    {"notepad.exe"},
			AppCalculator: {"calc.exe"},
		}
	case "darwin":
		return map[string][]string{
			AppNotepad:    {"open", "-a", "TextEdit"},
			AppCalculator: {"open", "-a", "Calculator"},
		}
	default:
		return map[string][]string{
			AppNotepad:    {"gedit"},
			AppCalculator: {"gnome-calculator"},
		}
	}
}

// Launcher starts desktop programs by logical name and does not wait for them.
type Launcher struct {
	apps  map[string][]string
	start func(*exec.Cmd) error
}

// NewLauncher takes override command lines (empty = platform default),
// split on whitespace.
func NewLauncher(notepadCmd, calculatorCmd string) *Launcher {
	apps := DefaultApps(runtime.GOOS)
	if f := strings.Fields(notepadCmd); len(f) > 0 {
		apps[AppNotepad] = f
	}
	if f := strings.Fields(calculatorCmd); len(f) > 0 {
		apps[AppCalculator] = f
	}
	return &Launcher{apps: apps, start: startDetached}
}

func (l *Launcher) Launch(_ context.Context, name string) error {
	argv, ok := l.apps[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownApp, name)
	}

	// not bound to ctx, the program outlives the turn
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := l.start(cmd); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("launch %s: %w", name, errors.Join(err, failure.ErrUnavailable))
		}
		return fmt.Errorf("launch %s: %w", name, err)
	}
	log.Debug("Launched", "app", name, "argv", argv)
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
