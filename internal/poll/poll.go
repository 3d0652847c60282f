// Package poll runs a fetch function on a fixed interval and keeps the last
// good result.
package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// FetchFunc loads a fresh value.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Poller refetches a value every interval until its context is cancelled.
// A failed fetch is logged and the previous snapshot is kept.
type Poller[T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[T]

	mu      sync.Mutex
	current T
	ok      bool
	lastErr error
}

// New creates a Poller. name labels its log lines.
func New[T any](name string, interval time.Duration, fetch FetchFunc[T]) *Poller[T] {
	return &Poller[T]{name: name, interval: interval, fetch: fetch}
}

// Snapshot returns the last successfully fetched value and whether any fetch
// has succeeded yet.
func (p *Poller[T]) Snapshot() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.ok
}

// Err returns the error of the most recent fetch, or nil if it succeeded.
func (p *Poller[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Refresh fetches once and reports whether the snapshot changed.
func (p *Poller[T]) Refresh(ctx context.Context) bool {
	v, err := p.fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastErr = err
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("poll fetch failed, keeping previous snapshot", "poller", p.name, "error", err)
		}
		return false
	}
	p.current = v
	p.ok = true
	return true
}

// Run fetches immediately and then on every tick, calling onUpdate after each
// successful fetch. It returns when ctx is cancelled; onUpdate is never
// called after that.
func (p *Poller[T]) Run(ctx context.Context, onUpdate func(T)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if p.Refresh(ctx) && ctx.Err() == nil && onUpdate != nil {
			v, _ := p.Snapshot()
			onUpdate(v)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
