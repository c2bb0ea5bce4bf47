// Package panel holds the shared state machine behind every dashboard
// screen: a cached list with idle/loading/ready/failed states, item-scoped
// submitting flags for mutations, and a single refetch-after-mutation
// policy so no screen re-implements its own refresh.
package panel

import (
	"context"
	"sync"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// FetchFunc loads the panel's full item list.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Controller caches one screen's list. A failed fetch clears the list
// rather than retaining stale data; a failed mutation leaves the list
// untouched and surfaces a notification instead. Successful mutations
// always trigger exactly one refetch, trading an extra round trip for
// guaranteed convergence with the source of truth.
type Controller[T any] struct {
	name  string
	fetch FetchFunc[T]
	notes Notifier

	mu         sync.Mutex
	state      State
	items      []T
	err        error
	stale      bool
	submitting map[string]bool
}

func NewController[T any](name string, fetch FetchFunc[T], notes Notifier) *Controller[T] {
	if notes == nil {
		notes = NopNotifier{}
	}
	return &Controller[T]{
		name:       name,
		fetch:      fetch,
		notes:      notes,
		state:      StateIdle,
		submitting: make(map[string]bool),
	}
}

// Refresh loads the list. Concurrent refreshes are permitted; the last
// one to complete wins.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = false
	if err != nil {
		c.state = StateFailed
		c.items = nil
		c.err = err
		return err
	}
	c.state = StateReady
	c.items = items
	c.err = nil
	return nil
}

// Invalidate marks the cache stale without fetching. The next Ensure
// call refetches.
func (c *Controller[T]) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Ensure refetches only when the cache has never loaded or was
// invalidated; otherwise it serves what is already held.
func (c *Controller[T]) Ensure(ctx context.Context) error {
	c.mu.Lock()
	needs := c.stale || c.state == StateIdle
	c.mu.Unlock()
	if !needs {
		return nil
	}
	return c.Refresh(ctx)
}

// Items returns a copy of the current list. Empty when the last fetch
// failed.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error from the last failed fetch, if any.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Submitting reports whether the given item has a mutation in flight.
// The rest of the list stays interactive while one item is submitting.
func (c *Controller[T]) Submitting(itemKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting[itemKey]
}

// Mutate runs a mutating action scoped to one item (or one form, for
// creates). On success it refetches the whole list once; on failure it
// notifies and leaves the cached list exactly as it was.
func (c *Controller[T]) Mutate(ctx context.Context, itemKey string, action func(ctx context.Context) error) error {
	c.mu.Lock()
	if c.submitting[itemKey] {
		c.mu.Unlock()
		return ErrAlreadySubmitting
	}
	c.submitting[itemKey] = true
	c.mu.Unlock()

	err := action(ctx)

	c.mu.Lock()
	delete(c.submitting, itemKey)
	c.mu.Unlock()

	if err != nil {
		c.notes.Notify(c.name, err.Error())
		return err
	}
	return c.Refresh(ctx)
}
