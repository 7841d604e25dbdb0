package modelcache

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/threadworks/modelcache/internal/keys"
)

const defaultTTL = 10 * time.Minute

// MaxGeneration bounds the per-namespace generation counter. Advancing past
// it wraps to 0; any keys from the previous cycle are long expired by then.
const MaxGeneration uint64 = math.MaxUint32

type cache[V any] struct {
	ns      string
	backend Backend
	codec   Codec[V]
	log     Logger
	hooks   Hooks

	enabled   bool
	defaults  StoreOptions
	recompute bool

	gen *generation
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("modelcache: backend is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("modelcache: codec is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("modelcache: namespace is required")
	}

	c := &cache[V]{
		ns:        opts.Namespace,
		backend:   opts.Backend,
		codec:     opts.Codec,
		enabled:   !opts.Disabled,
		recompute: opts.RecomputeOnDecodeError,
	}

	// defaults
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.defaults = opts.DefaultStore
	if c.defaults.TTL == 0 {
		c.defaults.TTL = defaultTTL
	}

	c.gen = &generation{
		ns:         c.ns,
		controlKey: keys.Control(c.ns),
		backend:    c.backend,
		ttl:        opts.GenerationTTL,
		hooks:      c.hooks,
	}
	return c, nil
}

func (c *cache[V]) Enabled() bool     { return c.enabled }
func (c *cache[V]) Namespace() string { return c.ns }

func (c *cache[V]) Close(ctx context.Context) error {
	if c.backend != nil {
		return c.backend.Close(ctx)
	}
	return nil
}

func (c *cache[V]) Key(ctx context.Context, args ...any) (string, error) {
	d, err := keys.Digest(args)
	if err != nil {
		return "", fmt.Errorf("modelcache: digest args: %w", err)
	}
	if !c.enabled {
		// pass-through pins the generation at 0
		return keys.Entry(c.ns, 0, d), nil
	}
	g, err := c.gen.current(ctx)
	if err != nil {
		return "", err
	}
	return keys.Entry(c.ns, g, d), nil
}

func (c *cache[V]) GetOrCompute(ctx context.Context, hydrate HydrateFunc[V], args ...any) (V, error) {
	return c.GetOrComputeOpts(ctx, StoreOptions{}, hydrate, args...)
}

func (c *cache[V]) GetOrComputeOpts(ctx context.Context, opts StoreOptions, hydrate HydrateFunc[V], args ...any) (V, error) {
	var zero V
	if hydrate == nil {
		return zero, fmt.Errorf("modelcache: hydrate is required")
	}
	if !c.enabled {
		return hydrate(ctx)
	}

	g, err := c.gen.current(ctx)
	if err != nil {
		return zero, err
	}
	d, err := keys.Digest(args)
	if err != nil {
		return zero, fmt.Errorf("modelcache: digest args: %w", err)
	}
	k := keys.Entry(c.ns, g, d)

	raw, ok, err := c.backend.Get(ctx, k)
	if err != nil {
		return zero, fmt.Errorf("modelcache: backend get %q: %w", k, err)
	}
	if ok {
		v, derr := c.codec.Decode(raw)
		if derr == nil {
			c.hooks.Hit(c.ns, k)
			return v, nil
		}
		c.hooks.DecodeFailure(k, c.recompute)
		if !c.recompute {
			c.log.Error("cached entry undecodable", Fields{"key": k, "err": derr})
			return zero, &DecodeError{Key: k, Err: derr}
		}
		c.log.Warn("cached entry undecodable; recomputing", Fields{"key": k, "err": derr})
	} else {
		c.hooks.Miss(c.ns, k)
	}

	v, err := hydrate(ctx)
	if err != nil {
		return zero, err
	}
	payload, err := c.codec.Encode(v)
	if err != nil {
		return zero, fmt.Errorf("modelcache: encode value for %q: %w", k, err)
	}
	if err := c.backend.Store(ctx, k, payload, opts.Merge(c.defaults)); err != nil {
		return zero, fmt.Errorf("modelcache: backend store %q: %w", k, err)
	}
	return v, nil
}

func (c *cache[V]) Generation(ctx context.Context) (uint64, error) {
	if !c.enabled {
		return 0, nil
	}
	return c.gen.current(ctx)
}

func (c *cache[V]) InvalidateAll(ctx context.Context) error {
	if !c.enabled {
		return nil
	}
	next, err := c.gen.bump(ctx)
	if err != nil {
		return err
	}
	c.hooks.Invalidated(c.ns, next)
	c.log.Debug("namespace invalidated", Fields{"namespace": c.ns, "generation": next})
	return nil
}

func (c *cache[V]) InvalidationHook() InvalidationHook {
	return func(ctx context.Context) error {
		return c.InvalidateAll(ctx)
	}
}
