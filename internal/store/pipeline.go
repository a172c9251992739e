// Package store contains the four reactive domain stores (recipes,
// articles, users, favorites) behind the application's views. Each store
// owns one state record, mutated only through its own operations. Async
// operations are fire-and-forget: they flip loading on, dispatch one
// gateway request on a goroutine, and settle by patching state. Callers
// observe completion through the store's change broadcast, never through a
// return value; failures are absorbed and surfaced via the error field and
// exactly one notifier call.
package store

import (
	"sync"
	"sync/atomic"

	"github.com/mkolev/recipe-club/internal/gateway"
	"github.com/mkolev/recipe-club/internal/metrics"
	"github.com/mkolev/recipe-club/internal/notify"
)

// broadcaster publishes state-change ticks as closed channels. Subscribers
// grab the current channel, check state, and block on the channel; it is
// closed (and replaced) on the next change.
type broadcaster struct {
	mu sync.Mutex
	ch chan struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{ch: make(chan struct{})}
}

func (b *broadcaster) notify() {
	b.mu.Lock()
	close(b.ch)
	b.ch = make(chan struct{})
	b.mu.Unlock()
}

// Changed returns a channel closed at the next state change.
func (b *broadcaster) Changed() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ch
}

// op stamps invocations of one replace-style load operation so that a
// response arriving after a newer invocation is discarded instead of
// overwriting fresher state. Mutating operations whose success patch is
// incremental (favorite toggles) do not use it.
type op struct {
	seq atomic.Uint64
}

func (o *op) begin() uint64 { return o.seq.Add(1) }

func (o *op) stale(token uint64) bool { return o.seq.Load() != token }

// pipeline carries the loading/error discipline shared by every store.
// The embedding store guards its domain fields with the same mutex.
type pipeline struct {
	mu       sync.Mutex
	loading  bool
	err      string
	bc       *broadcaster
	notifier notify.Notifier
	store    string
}

func newPipeline(store string, notifier notify.Notifier) pipeline {
	return pipeline{bc: newBroadcaster(), notifier: notifier, store: store}
}

// Changed returns a channel closed at the next state change.
func (p *pipeline) Changed() <-chan struct{} { return p.bc.Changed() }

// start opens a new invocation: loading on, error cleared, and any extra
// patch (recording params, usually) applied under the same lock.
func (p *pipeline) start(patch func()) {
	p.mu.Lock()
	p.loading = true
	p.err = ""
	if patch != nil {
		patch()
	}
	p.mu.Unlock()
	p.bc.notify()
}

// succeed settles an invocation on the success path. With a non-nil guard,
// a superseded response is discarded and false returned; the caller must
// then skip its side effects too.
func (p *pipeline) succeed(guard *op, token uint64, patch func()) bool {
	p.mu.Lock()
	if guard != nil && guard.stale(token) {
		p.mu.Unlock()
		metrics.StaleResponsesTotal.Inc()
		return false
	}
	if patch != nil {
		patch()
	}
	p.loading = false
	p.mu.Unlock()
	p.bc.notify()
	return true
}

// fail settles an invocation on the failure path: error recorded, the
// caller's reset patch applied, loading cleared, one notifier error. The
// message comes from the gateway error, falling back to the operation's
// default so the sink never sees an empty string.
func (p *pipeline) fail(guard *op, token uint64, err error, fallback string, patch func()) {
	msg := gateway.MessageOf(err, fallback)
	p.mu.Lock()
	if guard != nil && guard.stale(token) {
		p.mu.Unlock()
		metrics.StaleResponsesTotal.Inc()
		return
	}
	p.err = msg
	if patch != nil {
		patch()
	}
	p.loading = false
	p.mu.Unlock()
	metrics.StoreFailuresTotal.WithLabelValues(p.store).Inc()
	p.notifier.Error(msg)
	p.bc.notify()
}

// Watchable is the read side views react to.
type Watchable interface {
	Changed() <-chan struct{}
}
