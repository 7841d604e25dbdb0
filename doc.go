// Package modelcache implements a generational read-through cache for model
// and repository layers. Each instance owns one namespace (typically a
// backing table name); entry keys embed a per-namespace generation counter,
// so invalidating the whole namespace is a single counter bump rather than a
// key scan - old entries are stranded and the backend's expiry reclaims them.
//
// Components:
//   - Backend: get/store byte store with TTLs (Redis, Ristretto, BigCache).
//   - Codec[V]: (de)serializes V <-> []byte (JSON, msgpack, CBOR, protobuf).
//   - Hooks / Logger: optional observability (slog, zap, logrus, Prometheus).
//
// Keys:
//
//	<ns>-<gen>-<digest>   cache entries; digest hashes the lookup args
//	generation-<ns>       the namespace's generation counter
//
// Read-through pattern:
//
//	posts, _ := modelcache.New[Post](modelcache.Options[Post]{
//	    Namespace: "posts",
//	    Backend:   rb,
//	    Codec:     codec.JSON[Post]{},
//	    Disabled:  modelcache.DisabledFromEnv("posts"),
//	})
//	p, err := posts.GetOrCompute(ctx, func(ctx context.Context) (Post, error) {
//	    return loadPost(ctx, id)
//	}, id)
//
// Write pipelines call the invalidation hook after any mutation:
//
//	hook := posts.InvalidationHook()
//	...
//	_ = hook(ctx) // everything cached under "posts" is now unreachable
//
// Concurrent misses for one key are not coalesced and concurrent
// invalidations across processes can collapse into one bump; both are
// accepted trade-offs for a lock-free backend contract of plain get/store.
package modelcache
