package panel

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) Notify(panel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, panel+": "+message)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func TestRefreshSuccess(t *testing.T) {
	c := NewController("bans", func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	}, nil)

	assert.Equal(t, StateIdle, c.State())
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, StateReady, c.State())
	assert.Equal(t, []string{"a", "b"}, c.Items())
	assert.NoError(t, c.Err())
}

func TestRefreshFailureClearsItems(t *testing.T) {
	fetchErr := errors.New("backend unavailable")
	fail := false
	c := NewController("bans", func(ctx context.Context) ([]string, error) {
		if fail {
			return nil, fetchErr
		}
		return []string{"a"}, nil
	}, nil)

	require.NoError(t, c.Refresh(context.Background()))
	require.Len(t, c.Items(), 1)

	fail = true
	err := c.Refresh(context.Background())
	require.ErrorIs(t, err, fetchErr)
	assert.Equal(t, StateFailed, c.State())
	assert.Empty(t, c.Items(), "a failed fetch must not retain stale items")
	assert.ErrorIs(t, c.Err(), fetchErr)
}

func TestEnsureFetchesOnlyWhenNeeded(t *testing.T) {
	fetches := 0
	c := NewController("plans", func(ctx context.Context) ([]int, error) {
		fetches++
		return []int{fetches}, nil
	}, nil)

	require.NoError(t, c.Ensure(context.Background()))
	require.NoError(t, c.Ensure(context.Background()))
	assert.Equal(t, 1, fetches, "ready cache should be served without refetching")

	c.Invalidate()
	require.NoError(t, c.Ensure(context.Background()))
	assert.Equal(t, 2, fetches, "invalidated cache must refetch on next Ensure")
	assert.Equal(t, []int{2}, c.Items())
}

func TestMutateSuccessRefetchesOnce(t *testing.T) {
	fetches := 0
	c := NewController("payments", func(ctx context.Context) ([]string, error) {
		fetches++
		return []string{"p1"}, nil
	}, nil)
	require.NoError(t, c.Refresh(context.Background()))
	require.Equal(t, 1, fetches)

	actions := 0
	err := c.Mutate(context.Background(), "p1", func(ctx context.Context) error {
		actions++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, actions)
	assert.Equal(t, 2, fetches, "successful mutation triggers exactly one refetch")
	assert.False(t, c.Submitting("p1"))
}

func TestMutateFailureLeavesItemsAndNotifies(t *testing.T) {
	notes := &recordingNotifier{}
	fetches := 0
	c := NewController("payments", func(ctx context.Context) ([]string, error) {
		fetches++
		return []string{"p1", "p2"}, nil
	}, notes)
	require.NoError(t, c.Refresh(context.Background()))

	actionErr := errors.New("approve rejected upstream")
	err := c.Mutate(context.Background(), "p1", func(ctx context.Context) error {
		return actionErr
	})
	require.ErrorIs(t, err, actionErr)
	assert.Equal(t, []string{"p1", "p2"}, c.Items(), "failed mutation leaves the cached list untouched")
	assert.Equal(t, 1, fetches, "failed mutation must not refetch")
	assert.Equal(t, 1, notes.count())
	assert.False(t, c.Submitting("p1"))
}

func TestMutateRejectsDoubleSubmit(t *testing.T) {
	c := NewController("bans", func(ctx context.Context) ([]string, error) {
		return nil, nil
	}, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- c.Mutate(context.Background(), "item-1", func(ctx context.Context) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	assert.True(t, c.Submitting("item-1"))
	assert.False(t, c.Submitting("item-2"), "other items stay interactive")

	err := c.Mutate(context.Background(), "item-1", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrAlreadySubmitting)

	// A different item is not blocked by item-1's in-flight mutation.
	err = c.Mutate(context.Background(), "item-2", func(ctx context.Context) error { return nil })
	assert.NoError(t, err)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Submitting("item-1"))
}

func TestItemsReturnsCopy(t *testing.T) {
	c := NewController("plans", func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	}, nil)
	require.NoError(t, c.Refresh(context.Background()))

	got := c.Items()
	got[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, c.Items())
}
