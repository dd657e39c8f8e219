package governor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// acquireWithin reports whether Acquire returns before the deadline. A nil
// release means it blocked.
func acquireWithin(t *testing.T, g *Governor, d time.Duration) func() {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	release, err := g.Acquire(ctx)
	if err != nil {
		return nil
	}
	return release
}

func TestNew_FloorsInvalidLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, New(0).Limit())
	assert.Equal(t, DefaultLimit, New(-5).Limit())
	assert.Equal(t, 2, New(2).Limit())
}

func TestSetLimit_RejectsBelowOne(t *testing.T) {
	g := New(4)

	err := g.SetLimit(0)
	require.ErrorIs(t, err, ErrInvalidLimit)
	assert.Equal(t, 4, g.Limit())

	err = g.SetLimit(-1)
	require.ErrorIs(t, err, ErrInvalidLimit)
	assert.Equal(t, 4, g.Limit())
}

func TestAcquire_BlocksBeyondLimit(t *testing.T) {
	g := New(2)

	r1 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r1)
	r2 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r2)

	// Third acquire must block until a permit frees up.
	assert.Nil(t, acquireWithin(t, g, 50*time.Millisecond))

	r1()
	r3 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r3)

	r2()
	r3()
}

func TestAcquire_ContextCancelled(t *testing.T) {
	g := New(1)
	release := acquireWithin(t, g, time.Second)
	require.NotNil(t, release)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Acquire(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRelease_Idempotent(t *testing.T) {
	g := New(1)

	release := acquireWithin(t, g, time.Second)
	require.NotNil(t, release)
	release()
	release()
	release()

	// A double release must not mint extra permits.
	r1 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r1)
	assert.Nil(t, acquireWithin(t, g, 50*time.Millisecond))
	r1()
}

func TestSetLimit_ResizesWhenIdle(t *testing.T) {
	g := New(1)

	// Force the lazy channel into existence, then go idle.
	release := acquireWithin(t, g, time.Second)
	require.NotNil(t, release)
	release()

	require.NoError(t, g.SetLimit(2))

	r1 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r1)
	r2 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r2)
	r1()
	r2()
}

func TestSetLimit_DeferredWhilePermitsHeld(t *testing.T) {
	g := New(2)

	r1 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r1)
	r2 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r2)

	require.NoError(t, g.SetLimit(1))
	assert.Equal(t, 1, g.Limit())

	// Both in-flight permits stay valid; releasing one frees a slot on the
	// old channel, so the old capacity still applies mid-flight.
	r1()
	r3 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r3)

	// The new size takes effect once everything is released.
	r2()
	r3()

	r4 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r4)
	assert.Nil(t, acquireWithin(t, g, 50*time.Millisecond))
	r4()
}

func TestAcquire_LazyChannelUsesCurrentLimit(t *testing.T) {
	g := New(5)
	require.NoError(t, g.SetLimit(1))

	r1 := acquireWithin(t, g, time.Second)
	require.NotNil(t, r1)
	assert.Nil(t, acquireWithin(t, g, 50*time.Millisecond))
	r1()
}
