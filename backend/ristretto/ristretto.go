package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	be "github.com/threadworks/modelcache/backend"
)

// Backend stores entries in an in-process Ristretto cache. Suited to
// single-replica deployments or as a near cache; generations are tracked in
// the same store, so invalidation is process-local too.
type Backend struct {
	c *rc.Cache
}

var _ be.Backend = (*Backend)(nil)

type Config struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	Metrics     bool
}

func New(cfg Config) (*Backend, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Backend{c: c}, nil
}

func (b *Backend) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := b.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	raw, _ := v.([]byte)
	if raw == nil {
		// foreign entry shape; drop it and report a miss
		b.c.Del(key)
		return nil, false, nil
	}
	return raw, true, nil
}

func (b *Backend) Store(_ context.Context, key string, value []byte, opts be.StoreOptions) error {
	cost := int64(len(value))
	if cost == 0 {
		cost = 1
	}
	var ttl time.Duration
	if opts.TTL > 0 {
		ttl = opts.TTL
	}
	// SetWithTTL may reject under pressure; admission is best-effort by
	// design, and a rejected write is just a future miss.
	b.c.SetWithTTL(key, value, cost, ttl)
	return nil
}

func (b *Backend) Close(_ context.Context) error {
	b.c.Wait()
	b.c.Close()
	return nil
}

// Metrics exposes Ristretto's own counters for callers that enabled them.
func (b *Backend) Metrics() *rc.Metrics { return b.c.Metrics }
