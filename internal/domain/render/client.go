// Package render defines the browser-session capability the monitoring
// cycle drives. Implementations live under internal/interface.
package render

import (
	"context"
	"errors"
	"time"
)

// ErrNavigationTimeout is returned by Navigate when the page does not reach
// the initial load state within the ceiling timeout.
var ErrNavigationTimeout = errors.New("render: navigation timeout")

// Condition is one of the observable page states a session can wait on
type Condition string

const (
	// CondNone means the wait budget expired with nothing observed
	CondNone Condition = "none"
	// CondResultsCard means the results-card marker element appeared
	CondResultsCard Condition = "results_card"
	// CondErrorBanner means the target's explicit error banner appeared
	CondErrorBanner Condition = "error_banner"
)

// Session is a single browser page owned by one monitoring cycle.
//
// WaitForAny returns CondNone when the timeout expires without any of the
// requested conditions appearing; that is a valid outcome, not an error.
type Session interface {
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	WaitForAny(ctx context.Context, conds []Condition, timeout time.Duration) (Condition, error)
	ReadVisibleText(ctx context.Context) (string, error)
	ClickIfPresent(ctx context.Context, label string) (bool, error)
	Close() error
}

// Client creates render sessions. One session is acquired per cycle and
// reused across all routes.
type Client interface {
	NewSession(ctx context.Context) (Session, error)
}
