// Package asynchook decouples hook sinks from the cache's hot path. Events
// are queued to worker goroutines; when the queue is full they are dropped
// rather than blocking a read.
//
// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{HitEvery: 100})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := modelcache.New[Post](modelcache.Options[Post]{
//	    Namespace: "posts",
//	    Backend:   backend,
//	    Codec:     codec.JSON[Post]{},
//	    Hooks:     hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/threadworks/modelcache"
)

type Hooks struct {
	inner modelcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ modelcache.Hooks = (*Hooks)(nil)

func New(inner modelcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit(ns, k string)  { h.try(func() { h.inner.Hit(ns, k) }) }
func (h *Hooks) Miss(ns, k string) { h.try(func() { h.inner.Miss(ns, k) }) }
func (h *Hooks) DecodeFailure(k string, recomputing bool) {
	h.try(func() { h.inner.DecodeFailure(k, recomputing) })
}
func (h *Hooks) GenerationLoaded(ns string, gen uint64, seeded bool) {
	h.try(func() { h.inner.GenerationLoaded(ns, gen, seeded) })
}
func (h *Hooks) Invalidated(ns string, gen uint64) {
	h.try(func() { h.inner.Invalidated(ns, gen) })
}
func (h *Hooks) GenerationError(ns, op string, err error) {
	h.try(func() { h.inner.GenerationError(ns, op, err) })
}
