package browser

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
)

// Navigator opens pages in the user's default browser.
type Navigator struct {
	open func(url string) error
}

func NewNavigator() *Navigator {
	// xdg-open and friends are chatty on stdout
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &Navigator{open: browser.OpenURL}
}

func (n *Navigator) OpenURL(url string) error {
	if err := n.open(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
