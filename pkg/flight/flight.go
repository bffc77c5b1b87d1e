package flight

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
	"weak"
)

// Cache coalesces concurrent lookups of the same key and remembers
// successful results. Each result is held strongly until its TTL passes and
// weakly afterwards, so the GC may reclaim it once nothing else refers to it.
type Cache[K comparable, V any] struct {
	finished map[K]*entry[V]
	fmu      sync.RWMutex

	pending map[K]*call[V]
	pmu     sync.Mutex

	work func(context.Context, K) (V, error)

	// ttl is the strong-hold duration in nanoseconds; <= 0 holds forever.
	ttl atomic.Int64
}

type entry[V any] struct {
	w        weak.Pointer[V]
	strong   *V
	deadline time.Time // zero => infinite
}

type call[V any] struct {
	val  V
	err  error
	done chan struct{}
}

// NewCache returns a cache that computes misses with work. Work runs detached
// from the caller's cancellation so one impatient caller cannot fail the
// others waiting on the same key.
func NewCache[K comparable, V any](work func(context.Context, K) (V, error)) *Cache[K, V] {
	c := &Cache[K, V]{
		finished: make(map[K]*entry[V]),
		pending:  make(map[K]*call[V]),
		work:     work,
	}
	c.ttl.Store(int64(time.Hour))
	return c
}

// Expiry sets the strong-hold duration for future writes.
// d <= 0 keeps a permanent strong reference.
func (c *Cache[K, V]) Expiry(d time.Duration) {
	if d <= 0 {
		c.ttl.Store(0)
		return
	}
	c.ttl.Store(int64(d))
}

// Get returns the cached value for k or computes it. Errors are not cached.
func (c *Cache[K, V]) Get(ctx context.Context, k K) (V, error) {
	c.pmu.Lock()

	if v, ok := c.load(k); ok {
		c.pmu.Unlock()
		return v, nil
	}

	if p, ok := c.pending[k]; ok {
		c.pmu.Unlock()
		select {
		case <-p.done:
			return p.val, p.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	p := &call[V]{done: make(chan struct{})}
	c.pending[k] = p
	c.pmu.Unlock()

	p.val, p.err = c.work(context.WithoutCancel(ctx), k)
	if p.err == nil {
		c.store(k, p.val)
	}

	c.pmu.Lock()
	close(p.done)
	delete(c.pending, k)
	c.pmu.Unlock()

	return p.val, p.err
}

// Forget drops any finished result for k.
func (c *Cache[K, V]) Forget(k K) {
	c.fmu.Lock()
	delete(c.finished, k)
	c.fmu.Unlock()
}

// --- internals ---

func (c *Cache[K, V]) load(k K) (V, bool) {
	var zero V

	c.fmu.RLock()
	e, ok := c.finished[k]
	c.fmu.RUnlock()
	if !ok {
		return zero, false
	}

	c.fmu.Lock()
	defer c.fmu.Unlock()
	if cur, ok := c.finished[k]; !ok || cur != e {
		return zero, false
	}
	if e.strong != nil && !e.deadline.IsZero() && time.Now().After(e.deadline) {
		e.strong = nil
	}
	if vp := e.w.Value(); vp != nil {
		return *vp, true
	}
	delete(c.finished, k)
	return zero, false
}

func (c *Cache[K, V]) store(k K, val V) {
	// dedicated heap cell so the weak pointer refers to a stable address
	v := new(V)
	*v = val

	e := &entry[V]{w: weak.Make(v), strong: v}
	if d := time.Duration(c.ttl.Load()); d > 0 {
		e.deadline = time.Now().Add(d)
	}

	c.fmu.Lock()
	c.finished[k] = e
	c.fmu.Unlock()
}
