package store

import (
	"context"
	"reflect"
	"sync"
)

// Guard prevents redundant fetches when filter/pagination params are
// unchanged. Comparison is by deep value equality: params are rebuilt on
// every update, so identity tells us nothing.
type Guard[T any] struct {
	mu   sync.Mutex
	last *T
}

// Changed reports whether next differs from the last acted-upon snapshot,
// recording it when it does. The first call always reports true.
func (g *Guard[T]) Changed(next T) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last != nil && reflect.DeepEqual(*g.last, next) {
		return false
	}
	snapshot := next
	g.last = &snapshot
	return true
}

// Reset forgets the last snapshot so the next Changed reports true.
func (g *Guard[T]) Reset() {
	g.mu.Lock()
	g.last = nil
	g.mu.Unlock()
}

// WatchParams runs a list view's reaction loop: whenever w broadcasts a
// change and params differ from the last acted-upon snapshot, fetch is
// invoked with the new snapshot. It fires once on entry for the initial
// params, then blocks until ctx is done. Multiple observers of the same
// store each carry their own guard, so a single params change produces a
// single fetch per observer no matter how many broadcasts it causes.
func WatchParams[T any](ctx context.Context, w Watchable, params func() T, fetch func(T)) {
	var g Guard[T]
	for {
		ch := w.Changed()
		if p := params(); g.Changed(p) {
			fetch(p)
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return
		}
	}
}

// Await blocks until pred reports true, rechecking on every state change
// of w. It returns ctx.Err() if the context ends first.
func Await(ctx context.Context, w Watchable, pred func() bool) error {
	for {
		ch := w.Changed()
		if pred() {
			return nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
