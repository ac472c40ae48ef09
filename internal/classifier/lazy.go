package classifier

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Lazy holds a value loaded on first use. Concurrent first callers share a
// single load. A successful load is cached for the lifetime of the Lazy; a
// failed one is not, so the next call retries.
type Lazy[T any] struct {
	load func(ctx context.Context) (T, error)

	mu     sync.RWMutex
	value  T
	loaded bool

	group singleflight.Group
}

// NewLazy creates a Lazy around load.
func NewLazy[T any](load func(ctx context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{load: load}
}

// Get returns the cached value, loading it if needed. The shared load runs
// detached from any single caller's cancellation; a caller whose ctx ends
// first stops waiting and gets ctx.Err() while the load carries on for the
// others.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	var zero T

	l.mu.RLock()
	if l.loaded {
		v := l.value
		l.mu.RUnlock()
		return v, nil
	}
	l.mu.RUnlock()

	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("load", func() (interface{}, error) {
		l.mu.RLock()
		if l.loaded {
			v := l.value
			l.mu.RUnlock()
			return v, nil
		}
		l.mu.RUnlock()

		v, err := l.load(loadCtx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.value = v
		l.loaded = true
		l.mu.Unlock()
		return v, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		out, _ := res.Val.(T)
		return out, nil
	}
}

// Loaded reports whether a value is cached.
func (l *Lazy[T]) Loaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}
