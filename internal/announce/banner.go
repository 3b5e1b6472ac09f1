package announce

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text, color string
}{
	{"      _                  _     ", "#38bdf8"},
	{"     | | __ _ _ ____   _(_)___ ", "#22d3ee"},
	{"  _  | |/ _` | '__\\ \\ / / / __|", "#2dd4bf"},
	{" | |_| | (_| | |   \\ V /| \\__ \\", "#34d399"},
	{"  \\___/ \\__,_|_|    \\_/ |_|___/", "#4ade80"},
}

// Banner prints the startup logo, colored when w is a color terminal.
func Banner(w io.Writer, subtitle string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if subtitle != "" {
		fmt.Fprintln(w, out.String("  "+subtitle).Faint())
	}
	fmt.Fprintln(w)
}
