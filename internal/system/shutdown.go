package system

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

func ShutdownArgs(goos string) []string {
	if goos == "windows" {
		return []string{"shutdown", "/s", "/t", "0"}
	}
	return []string{"shutdown", "-h", "now"}
}

// Power issues the immediate power-off. It usually needs elevated rights.
type Power struct {
	argv []string
	run  func(*exec.Cmd) ([]byte, error)
}

func NewPower() *Power {
	return &Power{
		argv: ShutdownArgs(runtime.GOOS),
		run:  func(c *exec.Cmd) ([]byte, error) { return c.CombinedOutput() },
	}
}

func (p *Power) ShutdownNow(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, p.argv[0], p.argv[1:]...)
	out, err := p.run(cmd)
	if err != nil {
		return fmt.Errorf("%s: %w (%s)", strings.Join(p.argv, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
