// Package governor bounds how many browser sessions exist at once. Each
// session is a full OS-level browser process; an unbounded batch would OOM
// the host.

package governor

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidLimit is returned for limits below 1.
var ErrInvalidLimit = errors.New("invalid concurrency limit")

// DefaultLimit suits a typical development host. Lower it for
// memory-constrained machines, raise it where memory allows.
const DefaultLimit = 3

// Governor is a counting-permit primitive. The underlying channel is built
// lazily on the first Acquire using the limit in effect at that moment.
// SetLimit resizes it immediately when no permits are held; with permits in
// flight the new size is recorded and applied once the last holder releases,
// so a resize never strands or duplicates permits.
type Governor struct {
	mu    sync.Mutex
	limit int
	held  int
	sem   chan struct{}
	stale bool // sem capacity no longer matches limit
}

func New(limit int) *Governor {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Governor{limit: limit}
}

// Limit reports the configured limit, which may not yet be reflected by an
// in-flight permit channel.
func (g *Governor) Limit() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.limit
}

// SetLimit changes the configured limit. Values below 1 fail and leave the
// current limit untouched.
func (g *Governor) SetLimit(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: must be >= 1, got %d", ErrInvalidLimit, n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.limit = n
	if g.sem != nil {
		if g.held == 0 {
			g.sem = make(chan struct{}, n)
		} else {
			g.stale = true
		}
	}
	return nil
}

// Acquire blocks until a permit is free and returns its release func. The
// release is idempotent and must run on every exit path.
func (g *Governor) Acquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	if g.sem == nil {
		g.sem = make(chan struct{}, g.limit)
	}
	sem := g.sem
	g.mu.Unlock()

	select {
	case sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	g.held++
	g.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			<-sem
			g.mu.Lock()
			g.held--
			if g.held == 0 && g.stale {
				g.sem = make(chan struct{}, g.limit)
				g.stale = false
			}
			g.mu.Unlock()
		})
	}
	return release, nil
}
