package assistant

import (
	"context"
	log "log/slog"
	"strings"
)

type ConfirmState int

const (
	AwaitingConfirmation ConfirmState = iota
	Confirmed
	Canceled
)

func (s ConfirmState) String() string {
	switch s {
	case AwaitingConfirmation:
		return "awaiting"
	case Confirmed:
		return "confirmed"
	case Canceled:
		return "canceled"
	}
	return "unknown"
}

// confirmShutdown asks once. Only a reply containing "yes" proceeds; there is no retry.
func (a *Assistant) confirmShutdown(ctx context.Context) ConfirmState {
	state := AwaitingConfirmation
	reply := a.ask(ctx, "Are you sure you want to shutdown? Say yes to confirm.")

	if !strings.Contains(reply, "yes") {
		state = Canceled
		log.Info("shutdown", "state", state, "reply", reply)
		a.out.Announce("Shutdown canceled.")
		return state
	}

	state = Confirmed
	log.Info("shutdown", "state", state)
	a.out.Announce("Shutting down.")
	if a.caps.System == nil {
		a.out.Announce("Sorry, I failed to initiate shutdown.")
		return state
	}
	if err := a.caps.System.ShutdownNow(ctx); err != nil {
		log.Error("shutdown failed", "err", err)
		a.out.Announce("Sorry, I failed to initiate shutdown.")
	}
	return state
}
