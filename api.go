package modelcache

import (
	"context"
	"time"

	be "github.com/threadworks/modelcache/backend"
	co "github.com/threadworks/modelcache/codec"
)

// Re-exports so most callers only import the root package.
type (
	Backend      = be.Backend
	StoreOptions = be.StoreOptions
	Codec[V any] = co.Codec[V]
)

// HydrateFunc computes the value to cache on a miss. It may perform
// arbitrary I/O (typically a database read) and must be safe to call more
// than once: concurrent misses for the same key are not coalesced, so two
// callers can hydrate the same entry at the same time.
type HydrateFunc[V any] func(ctx context.Context) (V, error)

// InvalidationHook is the handle handed to write pipelines. Invoking it is
// equivalent to calling InvalidateAll on the cache that produced it.
type InvalidationHook func(ctx context.Context) error

// Cache is a per-namespace read-through cache over a shared key-value
// backend. Invalidation is O(1): every entry key embeds the namespace's
// generation counter, and advancing the counter strands the entire previous
// key family for the backend's expiry to reclaim.
type Cache[V any] interface {
	Enabled() bool
	Namespace() string
	Close(ctx context.Context) error

	// Key returns the storage key GetOrCompute would use for args right now.
	// Exposed for diagnostics and tests.
	Key(ctx context.Context, args ...any) (string, error)

	// GetOrCompute returns the cached value for args, or calls hydrate
	// exactly once, stores the result, and returns it. Backend and decode
	// failures surface as errors; there are no retries at this layer.
	GetOrCompute(ctx context.Context, hydrate HydrateFunc[V], args ...any) (V, error)

	// GetOrComputeOpts is GetOrCompute with per-call storage options layered
	// over the instance defaults (per-call wins on collision).
	GetOrComputeOpts(ctx context.Context, opts StoreOptions, hydrate HydrateFunc[V], args ...any) (V, error)

	// Generation reports the namespace's current generation, loading it from
	// the backend on first use. Always 0 in pass-through mode.
	Generation(ctx context.Context) (uint64, error)

	// InvalidateAll advances the generation by one (wrapping past
	// MaxGeneration), persisting it before returning. Old entries are not
	// touched; they simply become unreachable.
	InvalidateAll(ctx context.Context) error

	// InvalidationHook returns the handle write pipelines call after
	// mutating the namespace's backing data.
	InvalidationHook() InvalidationHook
}

// Options tune a cache instance. Namespace, Backend, and Codec are required;
// everything else has a sensible default.
type Options[V any] struct {
	// Required
	Namespace string // logical record group, e.g. "posts", "users"
	Backend   be.Backend
	Codec     co.Codec[V]

	Logger Logger // nil => NopLogger
	Hooks  Hooks  // nil => NopHooks

	// DefaultStore applies to every entry write; a zero TTL becomes 10
	// minutes. Per-call options merge over it.
	DefaultStore StoreOptions

	// GenerationTTL bounds the lifetime of the generation control key.
	// Zero means no expiry. If the key expires, readers observe generation
	// 0 again; entries have their own (shorter) TTLs, so that is safe.
	GenerationTTL time.Duration

	// Disabled puts the instance in pass-through mode: every read hydrates
	// directly and the backend is never touched. Operational kill switch;
	// see DisabledFromEnv.
	Disabled bool

	// RecomputeOnDecodeError demotes a failed decode of a cached entry to a
	// recompute instead of an error. Off by default: silently recomputing
	// can mask corruption in the shared store.
	RecomputeOnDecodeError bool
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
