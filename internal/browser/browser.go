// Package browser is the page-automation boundary. The engine and the site
// adapters only ever see Page and Factory; the playwright implementation is
// one possible engine behind them.

package browser

import (
	"context"
	"errors"
	"time"
)

// ErrNavigationTimeout wraps page loads that exceeded their budget, so the
// orchestrator can report them distinctly from other navigation failures.
var ErrNavigationTimeout = errors.New("navigation timeout")

// Page is one live browser tab. Navigate waits for the document-ready signal.
// ClickIfVisible is best effort: a missing element is a false return, not an
// error. Settle is an explicit rendering pause; fakes may return immediately.
type Page interface {
	Navigate(url string, timeout time.Duration) error
	Settle(d time.Duration)
	Evaluate(script string) (any, error)
	ClickIfVisible(selector string) bool
	ScrollToBottom()
	Close() error
}

// Factory opens fresh browser sessions. Each session is a heavyweight
// OS-level process; the caller is responsible for bounding how many exist.
type Factory interface {
	Open(ctx context.Context) (Page, error)
}
