package main

import (
	"fmt"
	"os"
	"strings"

	cli "github.com/spf13/pflag"

	"jarvis/internal/config"
	"jarvis/internal/ipc"
)

func main() {
	socketPath := cli.StringP("socket", "s", config.DefaultSocketPath, "Control socket of a jarvis running with --mode socket")
	stop := cli.Bool("stop", false, "Ask jarvis to say goodbye and exit")
	cli.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: jarvis-ctl [flags] <utterance...>\n")
		cli.PrintDefaults()
	}
	cli.Parse()

	msg := ipc.ControlMessage{Cmd: ipc.CmdSay, Text: strings.Join(cli.Args(), " ")}
	if *stop {
		msg = ipc.ControlMessage{Cmd: ipc.CmdStop}
	} else if strings.TrimSpace(msg.Text) == "" {
		cli.Usage()
		os.Exit(2)
	}

	if err := ipc.Send(*socketPath, msg); err != nil {
		fmt.Fprintln(os.Stderr, "jarvis not running:", err)
		os.Exit(1)
	}
}
