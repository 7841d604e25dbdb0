// Package backend defines the key-value store abstraction consumed by
// modelcache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly
// the same []byte that was previously passed to Store for a key (no
// prepended/appended metadata, no re-encoding, no mutation). If a store
// performs internal transforms (e.g., compression), they MUST be fully
// reversed so that the bytes returned by Get are identical to the bytes
// provided to Store.
//
// The contract is deliberately small: get and store, nothing else. The cache
// never deletes keys; stale entries become unreachable when a namespace's
// generation advances and are reclaimed by the store's own expiry. Backends
// need no atomic increment and no transactions.
package backend

import (
	"context"
	"time"
)

// StoreOptions carries storage hints for a single write.
type StoreOptions struct {
	// TTL bounds the entry's lifetime in the store. Keep it finite: cache
	// entries are never deleted, only superseded, so an unbounded TTL grows
	// the keyspace without limit as generations advance. Zero inherits the
	// cache-level default (or means "no expiry" when passed to a backend
	// directly).
	TTL time.Duration

	// Flags holds backend-specific hints the cache passes through untouched.
	Flags map[string]string
}

// Merge returns o layered over base. Fields set in o win, including
// individual Flags keys on collision.
func (o StoreOptions) Merge(base StoreOptions) StoreOptions {
	out := base
	if o.TTL != 0 {
		out.TTL = o.TTL
	}
	if len(o.Flags) > 0 {
		merged := make(map[string]string, len(base.Flags)+len(o.Flags))
		for k, v := range base.Flags {
			merged[k] = v
		}
		for k, v := range o.Flags {
			merged[k] = v
		}
		out.Flags = merged
	}
	return out
}

// Backend is a minimal byte store with per-entry TTLs. Must be safe for
// concurrent Get/Store on distinct keys.
type Backend interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// IO/remote errors come back as (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Store writes value under key with the given options. Implementations
	// may ignore hints they do not understand.
	Store(ctx context.Context, key string, value []byte, opts StoreOptions) error

	// Close releases resources.
	Close(ctx context.Context) error
}
