package modelcache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	be "github.com/threadworks/modelcache/backend"
)

// generation tracks one namespace's generation counter. The counter is
// persisted in the same backend as the entries, under the control key, and
// cached in memory after the first read for the instance's lifetime.
//
// The mutex only serializes operations on this instance. Across processes
// the bump is a plain read-modify-write: two concurrent invalidations can
// collapse into one. That weak guarantee is deliberate; the backend contract
// has no atomic increment, and a lost increment still leaves every reader on
// a generation at least as new as the one it last observed.
type generation struct {
	ns         string
	controlKey string
	backend    Backend
	ttl        time.Duration
	hooks      Hooks

	mu     sync.Mutex
	loaded bool
	value  uint64
}

// current returns the generation, loading it from the backend on first use.
func (g *generation) current(ctx context.Context) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loadLocked(ctx)
}

func (g *generation) loadLocked(ctx context.Context) (uint64, error) {
	if g.loaded {
		return g.value, nil
	}
	raw, ok, err := g.backend.Get(ctx, g.controlKey)
	if err != nil {
		g.hooks.GenerationError(g.ns, "load", err)
		return 0, fmt.Errorf("modelcache: load generation %q: %w", g.controlKey, err)
	}
	var cur uint64
	if ok {
		cur, err = strconv.ParseUint(string(raw), 10, 64)
		if err != nil {
			g.hooks.GenerationError(g.ns, "parse", err)
			return 0, fmt.Errorf("modelcache: parse generation %q: %w", g.controlKey, err)
		}
		// a foreign out-of-range write folds back into the valid range
		cur %= MaxGeneration + 1
	}
	// write back so the control key always exists (and its TTL refreshes)
	if err := g.persistLocked(ctx, cur); err != nil {
		g.hooks.GenerationError(g.ns, "persist", err)
		return 0, fmt.Errorf("modelcache: persist generation %q: %w", g.controlKey, err)
	}
	g.value = cur
	g.loaded = true
	g.hooks.GenerationLoaded(g.ns, cur, !ok)
	return cur, nil
}

// bump advances the generation by one, wrapping past MaxGeneration, and
// persists the new value before exposing it. On persist failure the
// in-memory value is left untouched so readers keep the old generation.
func (g *generation) bump(ctx context.Context) (uint64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cur, err := g.loadLocked(ctx)
	if err != nil {
		return 0, &InvalidateError{Namespace: g.ns, LoadErr: err}
	}
	next := (cur + 1) % (MaxGeneration + 1)
	if err := g.persistLocked(ctx, next); err != nil {
		g.hooks.GenerationError(g.ns, "persist", err)
		return 0, &InvalidateError{Namespace: g.ns, StoreErr: err}
	}
	g.value = next
	return next, nil
}

func (g *generation) persistLocked(ctx context.Context, v uint64) error {
	return g.backend.Store(ctx, g.controlKey, []byte(strconv.FormatUint(v, 10)), be.StoreOptions{TTL: g.ttl})
}
