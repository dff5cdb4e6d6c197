// Package diag is the one-way channel for provider-level warnings:
// timeouts, faults and release failures are reported here instead of
// aborting a search.
package diag

import (
	"context"
	"errors"
	"net"
	"strings"

	"go.uber.org/zap"
)

type Kind string

const (
	KindTimeout Kind = "timeout"
	KindFault   Kind = "fault"
	KindRelease Kind = "release"
	KindConfig  Kind = "config"
)

type Event struct {
	Provider string
	Kind     Kind
	Message  string
}

// Reporter receives diagnostic events. It is notification only; nothing
// reads back from it to make control decisions.
type Reporter interface {
	Report(Event)
}

type logReporter struct {
	log *zap.Logger
}

// NewLogReporter emits events through zap at warn level.
func NewLogReporter(log *zap.Logger) Reporter {
	return &logReporter{log: log}
}

func (r *logReporter) Report(e Event) {
	r.log.Warn(e.Message,
		zap.String("provider", e.Provider),
		zap.String("kind", string(e.Kind)),
	)
}

type nopReporter struct{}

func (nopReporter) Report(Event) {}

func Nop() Reporter { return nopReporter{} }

var benignFragments = []string{
	"already closed",
	"connection closed",
	"browser closed",
	"websocket: close",
	"process already finished",
}

// BenignRelease reports whether a provider release error is a known
// shutdown race rather than something worth logging. Cancellation during
// teardown and already-closed transports fall in this bucket.
func BenignRelease(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, net.ErrClosed) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, frag := range benignFragments {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}
