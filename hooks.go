package modelcache

// Hooks are lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking; the cache calls them on
// hot paths. Wrap with hooks/async to decouple slow sinks.
type Hooks interface {
	// Entry served from the backend.
	Hit(namespace, key string)

	// Entry absent; hydrate is about to run.
	Miss(namespace, key string)

	// A cached entry failed to decode. recomputing reports whether the
	// cache will fall back to hydration (RecomputeOnDecodeError) or return
	// the error to the caller.
	DecodeFailure(key string, recomputing bool)

	// The generation counter was read from the backend for the first time
	// this instance's lifetime. seeded is true when the control key was
	// absent and generation 0 was written back.
	GenerationLoaded(namespace string, gen uint64, seeded bool)

	// InvalidateAll advanced the namespace to gen.
	Invalidated(namespace string, gen uint64)

	// A generation load/parse/persist failed. op is one of "load", "parse",
	// "persist".
	GenerationError(namespace, op string, err error)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) Hit(string, string)                    {}
func (NopHooks) Miss(string, string)                   {}
func (NopHooks) DecodeFailure(string, bool)            {}
func (NopHooks) GenerationLoaded(string, uint64, bool) {}
func (NopHooks) Invalidated(string, uint64)            {}
func (NopHooks) GenerationError(string, string, error) {}
