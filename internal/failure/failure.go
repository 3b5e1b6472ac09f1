// Package failure holds the failure kinds shared across capability
// boundaries. Adapters wrap them with %w; callers match with errors.Is.
package failure

import "errors"

// ErrNotConfigured is returned when required configuration or credentials are missing.
var ErrNotConfigured = errors.New("not configured")

// ErrUnavailable is returned when a backing tool or device cannot be started.
var ErrUnavailable = errors.New("unavailable")

// ErrInputClosed is returned when the input source is exhausted (EOF, closed socket).
var ErrInputClosed = errors.New("input closed")

// ErrEmptyResponse is returned when a remote service answers without usable text.
var ErrEmptyResponse = errors.New("empty response")

// ErrNoSpeech is returned when nothing above the silence gate was heard
// before the listen timeout.
var ErrNoSpeech = errors.New("no speech before timeout")
